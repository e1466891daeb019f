package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	p := NewPlaceholderSelector(DefaultTables(), "../data/images/placeholders", 3, fixedInt(0))
	tests := []struct {
		in   string
		want string
	}{
		{in: "Laboratório de Inteligência Artificial", want: "software"},
		{in: "Laboratório de Informática Aplicada", want: "software"},
		{in: "Grupo de IA Generativa", want: "software"},
		{in: "Laboratório de Microeletrônica", want: "eletronica"},
		{in: "Laboratório de Energia Solar", want: "software"},
		{in: "Grupo de Controle e Robótica", want: "mecanica_materiais"},
		{in: "Laboratório de Robótica", want: "mecanica_materiais"},
		{in: "Laboratório de Química Verde", want: DefaultCategory},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Categorize(tt.in))
		})
	}
}

func TestSelectDeterministic(t *testing.T) {
	p := NewPlaceholderSelector(DefaultTables(), "../data/images/placeholders", 3, fixedInt(2))
	got, category := p.Select("Laboratório de Software Livre")
	assert.Equal(t, "software", category)
	assert.Equal(t, "../data/images/placeholders/software_3.jpg", got)

	got, category = p.Select("Oficina")
	assert.Equal(t, DefaultCategory, category)
	assert.Equal(t, "../data/images/placeholders/default_3.jpg", got)
}

func TestSelectRandomStaysInRange(t *testing.T) {
	p := NewPlaceholderSelector(DefaultTables(), "ph", 3, nil)
	allowed := map[string]bool{"ph/default_1.jpg": true, "ph/default_2.jpg": true, "ph/default_3.jpg": true}
	for i := 0; i < 50; i++ {
		got, _ := p.Select("Oficina")
		assert.True(t, allowed[got], got)
	}
}
