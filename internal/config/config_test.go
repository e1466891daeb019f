package config

import (
	"log/slog"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("UNIT_MARKER", "")
	t.Setenv("PDF_START_PAGE", "not-a-number")
	t.Setenv("FETCH_INSECURE_TLS", "off")
	t.Setenv("OUTPUT_DIR", "/tmp/labs")
	t.Setenv("CSV_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PDFStartPage != 13 {
		t.Fatalf("PDFStartPage=%d", cfg.PDFStartPage)
	}
	if cfg.FetchInsecureTLS {
		t.Fatalf("FetchInsecureTLS should be false")
	}
	if cfg.CSVPath != filepath.Join("/tmp/labs", "labs_fga.csv") {
		t.Fatalf("CSVPath=%s", cfg.CSVPath)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing UNIT_MARKER error")
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := (Config{LogLevel: in}).SlogLevel(); got != want {
			t.Fatalf("level(%q)=%v want %v", in, got, want)
		}
	}
}
