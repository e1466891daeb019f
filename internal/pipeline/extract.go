package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jhillyerd/enmime"
	pdf "github.com/ledongthuc/pdf"

	"github.com/unb-mds/2025-2-Mural-UnB/internal"
)

var ErrNoPortfolioText = errors.New("no portfolio text in input")

// ExtractFromFile reads a portfolio file and returns its raw text. startPage only
// applies to PDF content (directly or as an e-mail attachment).
func ExtractFromFile(path string, inputType internal.InputType, startPage int) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input %s: %w", path, err)
	}
	if inputType == "" {
		inputType = DetectInputType(path, head(raw, 512)).Type
	}

	switch inputType {
	case internal.InputText:
		return string(raw), nil
	case internal.InputPDF:
		return ExtractPDFText(raw, startPage)
	case internal.InputEML:
		return ExtractEmailText(raw, startPage)
	default:
		return "", fmt.Errorf("unsupported input type %q", inputType)
	}
}

// ExtractPDFText concatenates the text layer of every page from startPage (1-based)
// to the end, one line per text row.
func ExtractPDFText(content []byte, startPage int) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	if startPage < 1 {
		startPage = 1
	}
	if startPage > r.NumPage() {
		return "", fmt.Errorf("start page %d beyond last page %d: %w", startPage, r.NumPage(), ErrNoPortfolioText)
	}

	var b strings.Builder
	for i := startPage; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := pageText(p)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrNoPortfolioText
	}
	return b.String(), nil
}

func pageText(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil || len(rows) == 0 {
		return p.GetPlainText(nil)
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var line strings.Builder
		for _, t := range row.Content {
			line.WriteString(t.S)
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n"), nil
}

// ExtractEmailText reads a portfolio forwarded by e-mail. A PDF attachment wins;
// otherwise the plain-text body, then the HTML body as text.
func ExtractEmailText(raw []byte, startPage int) (string, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("read envelope: %w", err)
	}

	for _, att := range env.Attachments {
		filename := strings.ToLower(strings.TrimSpace(att.FileName))
		if strings.HasSuffix(filename, ".pdf") || att.ContentType == "application/pdf" {
			return ExtractPDFText(att.Content, startPage)
		}
	}

	if strings.TrimSpace(env.Text) != "" {
		return env.Text, nil
	}
	if strings.TrimSpace(env.HTML) != "" {
		return htmlToText(env.HTML)
	}
	return "", ErrNoPortfolioText
}

func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	lines := []string{}
	doc.Find("p, li, h1, h2, h3, h4, td, div").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Filter("p, li, div, table").Length() > 0 {
			return
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	if len(lines) == 0 {
		return "", ErrNoPortfolioText
	}
	return strings.Join(lines, "\n"), nil
}

func head(raw []byte, n int) []byte {
	if len(raw) < n {
		return raw
	}
	return raw[:n]
}
