package main

import (
	"github.com/spf13/cobra"

	"github.com/unb-mds/2025-2-Mural-UnB/internal/pipeline"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/storage"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/util"
)

var (
	runInput     string
	runType      string
	runStartPage int
	runStartLine int
	runCSV       string
	runXLSX      string
	runNoImages  bool
	runReuse     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract, enrich and write the lab directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if cmd.Flags().Changed("reuse-images") {
			cfg.ReuseImages = runReuse
		}
		inType, err := inputType(runType)
		if err != nil {
			return err
		}

		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		opts := pipeline.ProcessOptions{
			Input:       runInput,
			Type:        inType,
			StartPage:   cfg.PDFStartPage,
			StartLine:   cfg.StartLine,
			CSVPath:     cfg.CSVPath,
			XLSXPath:    cfg.XLSXPath,
			RecordDelay: millis(cfg.RecordDelayMs),
		}
		if runStartPage > 0 {
			opts.StartPage = runStartPage
		}
		if runStartLine > 0 {
			opts.StartLine = runStartLine
		}
		if runCSV != "" {
			opts.CSVPath = runCSV
		}
		if runXLSX != "" {
			opts.XLSXPath = runXLSX
		}
		if runNoImages {
			opts.RecordDelay = 0
		}

		svc := pipeline.NewProcessingService(db, cfg, newEnricher(cfg, runNoImages, logger), util.Sleep, logger)
		res, err := svc.Process(cmd.Context(), opts)
		if err != nil {
			return err
		}
		renderRunSummary(cmd.OutOrStdout(), res, opts)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "Portfolio file (pdf, txt or eml)")
	runCmd.Flags().StringVarP(&runType, "type", "t", "", "Input type: pdf, text or eml (detected when empty)")
	runCmd.Flags().IntVar(&runStartPage, "start-page", 0, "First PDF page to read (default PDF_START_PAGE)")
	runCmd.Flags().IntVar(&runStartLine, "start-line", 0, "First text line to segment (default START_LINE)")
	runCmd.Flags().StringVar(&runCSV, "csv", "", "CSV output path (default CSV_PATH)")
	runCmd.Flags().StringVar(&runXLSX, "xlsx", "", "XLSX output path (default XLSX_PATH, none when empty)")
	runCmd.Flags().BoolVar(&runNoImages, "no-images", false, "Skip the web search and use placeholders only")
	runCmd.Flags().BoolVar(&runReuse, "reuse-images", false, "Reuse images downloaded by earlier runs (default REUSE_IMAGES)")
	_ = runCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(runCmd)
}
