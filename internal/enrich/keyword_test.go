package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordExtract(t *testing.T) {
	k := NewKeywordExtractor(DefaultTables())
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "robotics", in: "Laboratório de Robótica e Sistemas Embarcados", want: "robotica"},
		{name: "all stop words", in: "Laboratório de Pesquisa da FGA", want: "pesquisa"},
		{name: "short words skipped", in: "Lab de IA e TI", want: "pesquisa"},
		{name: "edge punctuation", in: "Núcleo (Aeroespacial) - LAB", want: "aeroespacial"},
		{name: "empty", in: "", want: "pesquisa"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, k.Extract(tt.in))
		})
	}
}

func TestKeywordFallbackConfigurable(t *testing.T) {
	tables := DefaultTables()
	tables.FallbackKeyword = "laboratorio"
	tables.StopWords = append(tables.StopWords, "robotica")
	k := NewKeywordExtractor(tables)
	assert.Equal(t, "embarcados", k.Extract("Laboratório de Robótica e Sistemas Embarcados"))
	assert.Equal(t, "laboratorio", k.Extract("de da do"))
}
