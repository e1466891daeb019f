package pipeline

import (
	"strings"

	"github.com/unb-mds/2025-2-Mural-UnB/internal/util"
)

// NormalizeText prepares extracted text for segmentation: unified line endings
// and the problematic PDF code points replaced. Hyphenated line breaks stay: the
// segmenter works on the line structure and rejoins them per description.
func NormalizeText(raw string) string {
	if raw == "" {
		return raw
	}
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return util.CleanText(text)
}
