package pipeline

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/unb-mds/2025-2-Mural-UnB/internal"
)

type DetectResult struct {
	Type   internal.InputType
	Reason string
}

var emlHeaderPrefixes = []string{"from:", "to:", "subject:", "mime-version:", "received:", "return-path:", "date:", "message-id:"}

// DetectInputType picks the extractor for a portfolio file. Magic bytes win over
// the extension; an unknown file is treated as plain text.
func DetectInputType(path string, head []byte) DetectResult {
	if bytes.HasPrefix(bytes.TrimLeft(head, "\r\n\t "), []byte("%PDF-")) {
		return DetectResult{Type: internal.InputPDF, Reason: "magic"}
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return DetectResult{Type: internal.InputPDF, Reason: "extension"}
	case ".eml":
		return DetectResult{Type: internal.InputEML, Reason: "extension"}
	case ".txt", ".text":
		return DetectResult{Type: internal.InputText, Reason: "extension"}
	}

	if countHeaderLines(head) >= 2 {
		return DetectResult{Type: internal.InputEML, Reason: "headers"}
	}
	return DetectResult{Type: internal.InputText, Reason: "fallback"}
}

func ParseInputType(value string) (internal.InputType, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pdf":
		return internal.InputPDF, true
	case "text", "txt":
		return internal.InputText, true
	case "eml", "email":
		return internal.InputEML, true
	}
	return "", false
}

func countHeaderLines(head []byte) int {
	count := 0
	for _, line := range strings.Split(string(head), "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" {
			break
		}
		for _, prefix := range emlHeaderPrefixes {
			if strings.HasPrefix(line, prefix) {
				count++
				break
			}
		}
	}
	return count
}
