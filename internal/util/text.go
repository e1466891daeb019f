package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reSpaces      = regexp.MustCompile(`\s+`)
	reHyphenBreak = regexp.MustCompile(`(\p{L})-\s+(\p{Ll})`)
)

// Code points the PDF text layer emits that break keyword and prefix matching.
var cleanReplacer = strings.NewReplacer(
	"\u202f", " ",
	"\u00a0", " ",
	"\u2013", "-",
	"\u2014", "-",
	"\u2018", "'",
	"\u2019", "'",
	"\u201c", `"`,
	"\u201d", `"`,
)

// CleanText replaces non-breaking spaces, dashes and curly quotes with their
// ASCII equivalents.
func CleanText(input string) string {
	if input == "" {
		return input
	}
	return cleanReplacer.Replace(input)
}

// JoinHyphenated rejoins words split across a line break, e.g.
// "pesqui- sadores" -> "pesquisadores". It runs to a fixed point so chains such
// as "a- b- c" collapse fully.
func JoinHyphenated(input string) string {
	if input == "" {
		return input
	}
	for {
		out := reHyphenBreak.ReplaceAllString(input, "$1$2")
		if out == input {
			return out
		}
		input = out
	}
}

// Fold lowercases and strips combining diacritics: "Robótica" -> "robotica".
func Fold(input string) string {
	lower := strings.ToLower(input)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, lower)
	if err != nil {
		return lower
	}
	return out
}

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// NameKey is the identity used to deduplicate records by name.
func NameKey(name string) string {
	return strings.ToUpper(NormalizeSpaces(name))
}

func KeepRunes(input string, keep func(r rune) bool) string {
	var b strings.Builder
	for _, r := range input {
		if keep(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func IsAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
