package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unb-mds/2025-2-Mural-UnB/internal"
)

const sampleEmail = "From: dpi@unb.br\r\n" +
	"To: mural@unb.br\r\n" +
	"Subject: Portfolio\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"10. Laboratório de Software Livre\r\n" +
	"DESCRIÇÃO: Desenvolve software na FGA.\r\n"

func TestExtractEmailText(t *testing.T) {
	text, err := ExtractEmailText([]byte(sampleEmail), 1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "Laboratório de Software Livre") {
		t.Fatalf("text=%q", text)
	}
}

func TestExtractEmailHTMLOnly(t *testing.T) {
	raw := "From: dpi@unb.br\r\n" +
		"Subject: Portfolio\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<html><body><p>10. Laboratório de Software Livre</p><p>DESCRIÇÃO: FGA</p></body></html>\r\n"
	text, err := ExtractEmailText([]byte(raw), 1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "DESCRIÇÃO: FGA") {
		t.Fatalf("text=%q", text)
	}
}

func TestExtractFromFileText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.txt")
	if err := os.WriteFile(path, []byte("linha 1\nlinha 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	text, err := ExtractFromFile(path, "", 13)
	if err != nil {
		t.Fatal(err)
	}
	if text != "linha 1\nlinha 2" {
		t.Fatalf("text=%q", text)
	}

	if _, err := ExtractFromFile(filepath.Join(t.TempDir(), "missing.txt"), internal.InputText, 1); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestExtractPDFTextRejectsGarbage(t *testing.T) {
	if _, err := ExtractPDFText([]byte("not a pdf"), 1); err == nil {
		t.Fatal("expected error")
	}
}

func TestDetectInputType(t *testing.T) {
	cases := []struct {
		path string
		head string
		want internal.InputType
	}{
		{path: "portfolio.bin", head: "%PDF-1.7\n", want: internal.InputPDF},
		{path: "portfolio.PDF", head: "", want: internal.InputPDF},
		{path: "mail.eml", head: "", want: internal.InputEML},
		{path: "dump", head: "From: a@b\nSubject: x\n\nbody", want: internal.InputEML},
		{path: "dump", head: "10. Laboratório\n", want: internal.InputText},
	}
	for _, tc := range cases {
		if got := DetectInputType(tc.path, []byte(tc.head)).Type; got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.path, got, tc.want)
		}
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	in := "Lab de\r\nFísica – “FGA”"
	once := NormalizeText(in)
	if once != "Lab de\nFísica - \"FGA\"" {
		t.Fatalf("once=%q", once)
	}
	if twice := NormalizeText(once); twice != once {
		t.Fatalf("twice=%q", twice)
	}
}
