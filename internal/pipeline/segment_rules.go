package pipeline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SegmenterConfig carries the lookup tables the segmenter matches lines against.
// Tests substitute their own; DefaultSegmenterConfig returns the portfolio layout.
type SegmenterConfig struct {
	StartLine int

	CoordinatorPrefixes []string
	ContactPrefixes     []string
	DescriptionPrefixes []string

	// ReservedKeywords end a description when the line also contains a colon.
	ReservedKeywords []string
	// FooterPhrases are matched against the uppercased line.
	FooterPhrases []string

	MinNameLen         int
	MaxNameLen         int
	HeadingCapsRatio   float64
	ContinuationMaxLen int
}

func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		StartLine:           1,
		CoordinatorPrefixes: []string{"COORDENADOR:", "COORDENADORES:", "RESPONSÁVEL:", "RESPONSÁVEIS:"},
		ContactPrefixes:     []string{"CONTATO:"},
		DescriptionPrefixes: []string{"DESCRIÇÃO:", "DESCRICAO:"},
		ReservedKeywords: []string{
			"GRUPOS", "EQUIPAMENTOS", "COORDENADOR", "COORDENADORES", "RESPONSÁVEL",
			"CONTATO", "LABORATÓRIO", "NÚCLEO", "CENTRO", "CLASSIFICAÇÃO",
		},
		FooterPhrases: []string{
			"UNIVERSIDADE DE BRASÍLIA", "PORTFÓLIO", "INFRAESTRUTURA DE PESQUISA",
			"DPI CPAIP", "CIÊNCIAS EXATAS E TECNOLÓGICAS", "CIÊNCIAS EXATAS E DA TERRA",
		},
		MinNameLen:         10,
		MaxNameLen:         200,
		HeadingCapsRatio:   0.7,
		ContinuationMaxLen: 30,
	}
}

var (
	reSectionHeader   = regexp.MustCompile(`^\d+\.\d+(\.\d+)*\.`)
	reLongSeparator   = regexp.MustCompile(`^[_\-]{20,}$`)
	reShortSeparator  = regexp.MustCompile(`^[_\-]{10,}$`)
	reLoneNumber      = regexp.MustCompile(`^(\d+)\.$`)
	reInlineNumber    = regexp.MustCompile(`^(\d+)\.\s+(.+)`)
	reSubNumbering    = regexp.MustCompile(`^\d+\.\d+`)
	reRomanSection    = regexp.MustCompile(`^[IVX]+\s*-\s*[A-ZÀÁÂÃÉÊÍÓÔÕÚÇ\s]+$`)
	reLattesFull      = regexp.MustCompile(`(?i)\s*\(ID Lattes:\s*\d+\)`)
	reLattesDangling  = regexp.MustCompile(`\s*\(ID\s*$`)
	reLattesOpen      = regexp.MustCompile(`\s*\(ID Lattes:.*$`)
	reDescriptionTail = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\s+CLASSIFICA[ÇC][ÃA]O:.*$`),
		regexp.MustCompile(`(?i)\s+Laborat[óo]rio de Pesquisa\s*$`),
		regexp.MustCompile(`(?i)\s+[IVX]+\s*-\s*CIÊNCIAS.*$`),
		regexp.MustCompile(`(?i)\s+UNIVERSIDADE DE BRASÍLIA.*$`),
		regexp.MustCompile(`(?i)\s+PORTFÓLIO.*$`),
	}
)

func isSectionBoundary(line string) bool {
	return reSectionHeader.MatchString(line) || reLongSeparator.MatchString(line)
}

func hasAnyPrefix(line string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// fieldValue returns what follows the first colon of a field line.
func fieldValue(line string) string {
	_, value, ok := strings.Cut(line, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func cleanCoordinator(value string) string {
	value = reLattesFull.ReplaceAllString(value, "")
	value = reLattesDangling.ReplaceAllString(value, "")
	value = reLattesOpen.ReplaceAllString(value, "")
	return strings.TrimSpace(value)
}

// isHeading reports whether most significant words (alphabetic, longer than two
// letters) are written in capitals, which marks a page or area heading.
func isHeading(name string, ratio float64) bool {
	total, upper := 0, 0
	for _, word := range strings.Fields(name) {
		if utf8.RuneCountInString(word) <= 2 || !allLetters(word) {
			continue
		}
		total++
		if strings.ToUpper(word) == word {
			upper++
		}
	}
	if total == 0 {
		return false
	}
	return float64(upper)/float64(total) > ratio
}

func allLetters(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// trimDescription drops the classification suffix and footer fragments that
// were captured on the same line as description text.
func trimDescription(desc string) string {
	for _, re := range reDescriptionTail {
		desc = re.ReplaceAllString(desc, "")
	}
	return desc
}
