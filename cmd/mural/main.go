package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/unb-mds/2025-2-Mural-UnB/internal"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/config"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/enrich"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/fetch"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/pipeline"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/search"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/util"
)

var rootCmd = &cobra.Command{
	Use:   "mural",
	Short: "Build the FGA lab directory from the UnB research portfolio",
	Long: `mural reads the research infrastructure portfolio (PDF, plain text or an
e-mail carrying the PDF), recovers the lab entries of the campus, attaches an
image to each one and writes the directory as CSV and XLSX.`,
	SilenceUsage: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and installs the process logger.
func setup() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func inputType(value string) (internal.InputType, error) {
	if value == "" {
		return "", nil
	}
	t, ok := pipeline.ParseInputType(value)
	if !ok {
		return "", fmt.Errorf("unsupported --type %q (want pdf, text or eml)", value)
	}
	return t, nil
}

func newEnricher(cfg config.Config, offline bool, logger *slog.Logger) *enrich.Enricher {
	tables := enrich.DefaultTables()
	placeholders := enrich.NewPlaceholderSelector(tables, cfg.PlaceholderDir, cfg.PlaceholderVariants, nil)
	opts := enrich.EnricherOptions{ImageDir: cfg.ImageDir, ImageRelDir: cfg.ImageRelDir}
	if offline {
		return enrich.NewEnricher(nil, nil, placeholders, opts, logger)
	}

	fetcher := fetch.NewClient(cfg)
	locator := enrich.NewLocator(search.NewDDGClient(cfg, logger), fetcher, tables, enrich.LocatorOptions{
		InstitutionDomain: cfg.InstitutionDomain,
		UnitAcronym:       cfg.UnitMarker,
		MaxResults:        cfg.SearchMaxResults,
		Region:            cfg.SearchRegion,
		SearchDelay:       millis(cfg.SearchDelayMs),
	}, util.Sleep, logger)
	return enrich.NewEnricher(locator, enrich.NewDownloader(fetcher, logger), placeholders, opts, logger)
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
