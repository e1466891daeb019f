package enrich

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type Tier string

const (
	TierGold   Tier = "gold"
	TierGreen  Tier = "green"
	TierSilver Tier = "silver"
	TierBronze Tier = "bronze"
)

var (
	contentSelectors = []string{"main", "article", `div[class*="content"]`, `div[class*="post"]`, "body"}
	logoSelectors    = []string{`img[id*="logo"]`, `img[class*="logo"]`, `img[src*="logo"]`, `img[id*="brand"]`, `img[class*="brand"]`}
)

const (
	contentMinSide = 200
	logoMinSide    = 50
	headerMinSide  = 100
)

type ImageCandidate struct {
	URL  string
	Tier Tier
}

// TierExtractor looks for a representative image on a homepage, trying the
// tiers from most to least specific.
type TierExtractor struct {
	blockedNames  []string
	isInstitution func(host string) bool
}

func NewTierExtractor(t Tables, isInstitution func(host string) bool) *TierExtractor {
	names := make([]string, 0, len(t.BlockedImageNames))
	for _, n := range t.BlockedImageNames {
		names = append(names, strings.ToLower(n))
	}
	return &TierExtractor{blockedNames: names, isInstitution: isInstitution}
}

func (e *TierExtractor) Extract(doc *goquery.Document, page *url.URL) (ImageCandidate, bool) {
	steps := []struct {
		tier Tier
		find func(*goquery.Document, *url.URL) string
	}{
		{TierGold, e.gold},
		{TierGreen, e.green},
		{TierSilver, e.silver},
		{TierBronze, e.bronze},
	}
	for _, step := range steps {
		if src := step.find(doc, page); src != "" {
			return ImageCandidate{URL: src, Tier: step.tier}, true
		}
	}
	return ImageCandidate{}, false
}

func (e *TierExtractor) gold(doc *goquery.Document, _ *url.URL) string {
	content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content")
	content = strings.TrimSpace(content)
	if !ok || !e.valid(content) {
		return ""
	}
	return content
}

func (e *TierExtractor) green(doc *goquery.Document, _ *url.URL) string {
	for _, sel := range contentSelectors {
		area := doc.Find(sel).First()
		if area.Length() == 0 {
			continue
		}
		if src := e.firstSized(area.Find("img"), func(w, h int) bool {
			return w >= contentMinSide && h >= contentMinSide
		}); src != "" {
			return src
		}
	}
	return ""
}

func (e *TierExtractor) silver(doc *goquery.Document, page *url.URL) string {
	external := page == nil || e.isInstitution == nil || !e.isInstitution(page.Hostname())
	for _, sel := range logoSelectors {
		img := doc.Find(sel).First()
		src := imgSrc(img)
		if !e.valid(src) {
			continue
		}
		if external && strings.Contains(strings.ToLower(src), "logo") {
			continue
		}
		w, okW := dimension(img, "width")
		h, okH := dimension(img, "height")
		if !okW || !okH {
			continue
		}
		if w > logoMinSide || h > logoMinSide {
			return src
		}
	}
	return ""
}

func (e *TierExtractor) bronze(doc *goquery.Document, _ *url.URL) string {
	large := func(w, h int) bool { return w > headerMinSide && h > headerMinSide }
	if header := doc.Find("header").First(); header.Length() > 0 {
		if src := e.firstSized(header.Find("img"), large); src != "" {
			return src
		}
	}
	banner := doc.Find("div[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		return strings.Contains(strings.ToLower(class), "banner")
	}).First()
	if banner.Length() == 0 {
		return ""
	}
	return e.firstSized(banner.Find("img"), large)
}

// firstSized returns the first valid img whose declared width and height both
// parse and satisfy fits.
func (e *TierExtractor) firstSized(imgs *goquery.Selection, fits func(w, h int) bool) string {
	found := ""
	imgs.EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src := imgSrc(img)
		if !e.valid(src) {
			return true
		}
		w, okW := dimension(img, "width")
		h, okH := dimension(img, "height")
		if okW && okH && fits(w, h) {
			found = src
			return false
		}
		return true
	})
	return found
}

func (e *TierExtractor) valid(src string) bool {
	if src == "" {
		return false
	}
	lower := strings.ToLower(src)
	if strings.HasPrefix(lower, "data:") || strings.HasSuffix(lower, ".svg") {
		return false
	}
	for _, name := range e.blockedNames {
		if strings.Contains(lower, name) {
			return false
		}
	}
	return true
}

func imgSrc(img *goquery.Selection) string {
	if img.Length() == 0 {
		return ""
	}
	src, _ := img.Attr("src")
	return strings.TrimSpace(src)
}

// dimension reads a declared size such as width="300" or width="300px". A
// missing attribute counts as zero; anything else unparsable is rejected.
func dimension(img *goquery.Selection, attr string) (int, bool) {
	raw, ok := img.Attr(attr)
	if !ok {
		return 0, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(raw, "px", "")))
	if err != nil {
		return 0, false
	}
	return n, true
}
