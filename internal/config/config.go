package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string
	CSVPath   string
	XLSXPath  string

	ImageDir            string
	ImageRelDir         string
	PlaceholderDir      string
	PlaceholderVariants int

	PDFStartPage int
	StartLine    int

	UnitMarker        string
	InstitutionDomain string
	PortfolioPageURL  string

	SearchBaseURL      string
	SearchRegion       string
	SearchMaxResults   int
	SearchRateLimitRPS int
	SearchMaxAttempts  int
	SearchDelayMs      int
	RecordDelayMs      int

	FetchTimeoutMs   int
	FetchInsecureTLS bool
	UserAgent        string

	IDPrefix    string
	IDWidth     int
	ReuseImages bool

	LogLevel string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	dataDir := filepath.Join(cwd, "data")
	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(dataDir, "mural.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(dataDir, "Labs")),
		CSVPath:   getEnv("CSV_PATH", ""),
		XLSXPath:  getEnv("XLSX_PATH", ""),

		ImageDir:            getEnv("IMAGE_DIR", filepath.Join(dataDir, "images", "labs")),
		ImageRelDir:         getEnv("IMAGE_REL_DIR", "../images/labs"),
		PlaceholderDir:      getEnv("PLACEHOLDER_DIR", "../data/images/placeholders"),
		PlaceholderVariants: getEnvInt("PLACEHOLDER_VARIANTS", 3),

		PDFStartPage: getEnvInt("PDF_START_PAGE", 13),
		StartLine:    getEnvInt("START_LINE", 1),

		UnitMarker:        getEnv("UNIT_MARKER", "FGA"),
		InstitutionDomain: getEnv("INSTITUTION_DOMAIN", "unb.br"),
		PortfolioPageURL:  getEnv("PORTFOLIO_PAGE_URL", "http://pesquisa.unb.br/infraestrutura-de-pesquisa?menu=788"),

		SearchBaseURL:      getEnv("SEARCH_BASE_URL", "https://html.duckduckgo.com/html/"),
		SearchRegion:       getEnv("SEARCH_REGION", "br-pt"),
		SearchMaxResults:   getEnvInt("SEARCH_MAX_RESULTS", 5),
		SearchRateLimitRPS: getEnvInt("SEARCH_RATE_LIMIT_RPS", 1),
		SearchMaxAttempts:  getEnvInt("SEARCH_MAX_ATTEMPTS", 1),
		SearchDelayMs:      getEnvInt("SEARCH_DELAY_MS", 1000),
		RecordDelayMs:      getEnvInt("RECORD_DELAY_MS", 1500),

		FetchTimeoutMs:   getEnvInt("FETCH_TIMEOUT_MS", 15000),
		FetchInsecureTLS: getEnvBool("FETCH_INSECURE_TLS", true),
		UserAgent:        getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.36"),

		IDPrefix:    getEnv("ID_PREFIX", "2"),
		IDWidth:     getEnvInt("ID_WIDTH", 5),
		ReuseImages: getEnvBool("REUSE_IMAGES", false),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if cfg.CSVPath == "" {
		cfg.CSVPath = filepath.Join(cfg.OutputDir, "labs_fga.csv")
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

// Validate checks the values the enrichment pipeline cannot run without.
func (c Config) Validate() error {
	checks := []struct{ name, value string }{
		{"UNIT_MARKER", c.UnitMarker},
		{"INSTITUTION_DOMAIN", c.InstitutionDomain},
		{"IMAGE_DIR", c.ImageDir},
		{"PLACEHOLDER_DIR", c.PlaceholderDir},
	}
	for _, ch := range checks {
		if err := c.Require(ch.name, ch.value); err != nil {
			return err
		}
	}
	if c.PlaceholderVariants <= 0 {
		return fmt.Errorf("PLACEHOLDER_VARIANTS must be positive, got %d", c.PlaceholderVariants)
	}
	if c.IDWidth <= 0 {
		return fmt.Errorf("ID_WIDTH must be positive, got %d", c.IDWidth)
	}
	return nil
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
