package enrich

import (
	"strings"
	"unicode/utf8"

	"github.com/unb-mds/2025-2-Mural-UnB/internal/util"
)

const minKeywordLen = 4

type KeywordExtractor struct {
	stopWords map[string]struct{}
	fallback  string
}

func NewKeywordExtractor(t Tables) *KeywordExtractor {
	stop := make(map[string]struct{}, len(t.StopWords))
	for _, w := range t.StopWords {
		stop[util.Fold(w)] = struct{}{}
	}
	fallback := t.FallbackKeyword
	if fallback == "" {
		fallback = "pesquisa"
	}
	return &KeywordExtractor{stopWords: stop, fallback: fallback}
}

// Extract returns the first folded word of name that is not a stop word and has
// at least four letters, or the fallback keyword.
func (k *KeywordExtractor) Extract(name string) (keyword string) {
	defer func() {
		if recover() != nil {
			keyword = k.fallback
		}
	}()

	for _, word := range strings.Fields(util.Fold(name)) {
		word = strings.TrimFunc(word, func(r rune) bool { return !util.IsAlnum(r) })
		if utf8.RuneCountInString(word) < minKeywordLen {
			continue
		}
		if _, stop := k.stopWords[word]; stop {
			continue
		}
		return word
	}
	return k.fallback
}
