package enrich

import (
	"fmt"
	"math/rand"
	"path"
	"strings"

	"github.com/unb-mds/2025-2-Mural-UnB/internal/util"
)

// IntSource picks the placeholder variant; it returns a value in [0, n).
type IntSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.Intn(n) }

type PlaceholderSelector struct {
	categories []Category
	dir        string
	variants   int
	rnd        IntSource
}

// NewPlaceholderSelector builds a selector returning paths under dir. A nil rnd
// uses the process-wide random source.
func NewPlaceholderSelector(t Tables, dir string, variants int, rnd IntSource) *PlaceholderSelector {
	if variants <= 0 {
		variants = 1
	}
	if rnd == nil {
		rnd = globalRand{}
	}
	categories := make([]Category, 0, len(t.Categories))
	for _, c := range t.Categories {
		folded := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			folded = append(folded, util.Fold(kw))
		}
		categories = append(categories, Category{Name: c.Name, Keywords: folded})
	}
	return &PlaceholderSelector{categories: categories, dir: dir, variants: variants, rnd: rnd}
}

// Categorize returns the first category with a keyword contained in the folded
// name, or DefaultCategory. Matching is by substring, so the short keyword "ia"
// also hits names like "energia".
func (p *PlaceholderSelector) Categorize(name string) string {
	folded := util.Fold(name)
	for _, c := range p.categories {
		for _, kw := range c.Keywords {
			if strings.Contains(folded, kw) {
				return c.Name
			}
		}
	}
	return DefaultCategory
}

// Select returns the placeholder path for name and the category it belongs to.
func (p *PlaceholderSelector) Select(name string) (string, string) {
	category := p.Categorize(name)
	variant := p.rnd.IntN(p.variants) + 1
	return path.Join(p.dir, fmt.Sprintf("%s_%d.jpg", category, variant)), category
}
