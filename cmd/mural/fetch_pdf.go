package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/unb-mds/2025-2-Mural-UnB/internal/fetch"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/pipeline"
)

var (
	fetchPageURL string
	fetchOut     string
)

var fetchPDFCmd = &cobra.Command{
	Use:   "fetch-pdf",
	Short: "Download the research infrastructure portfolio PDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		pageURL := fetchPageURL
		if pageURL == "" {
			pageURL = cfg.PortfolioPageURL
		}
		if err := cfg.Require("PORTFOLIO_PAGE_URL", pageURL); err != nil {
			return err
		}
		out := fetchOut
		if out == "" {
			out = filepath.Join(cfg.OutputDir, pipeline.PortfolioFileName)
		}

		link, err := pipeline.DownloadPortfolio(cmd.Context(), fetch.NewClient(cfg), pageURL, out, logger)
		if err != nil {
			return err
		}
		renderPortfolio(cmd.OutOrStdout(), link, out)
		return nil
	},
}

func init() {
	fetchPDFCmd.Flags().StringVar(&fetchPageURL, "page-url", "", "Research page listing the portfolio (default PORTFOLIO_PAGE_URL)")
	fetchPDFCmd.Flags().StringVarP(&fetchOut, "out", "o", "", "Where to save the PDF (default OUTPUT_DIR/"+pipeline.PortfolioFileName+")")

	rootCmd.AddCommand(fetchPDFCmd)
}
