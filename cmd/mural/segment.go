package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/unb-mds/2025-2-Mural-UnB/internal/pipeline"
)

var (
	segInput     string
	segType      string
	segStartPage int
	segStartLine int
)

var segmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "Print the campus lab records found in the input as JSON",
	Long:  `Runs extraction, segmentation, the campus filter and deduplication without touching the network.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		if err := cfg.Require("UNIT_MARKER", cfg.UnitMarker); err != nil {
			return err
		}
		inType, err := inputType(segType)
		if err != nil {
			return err
		}

		opts := pipeline.ProcessOptions{
			Input:     segInput,
			Type:      inType,
			StartPage: cfg.PDFStartPage,
			StartLine: cfg.StartLine,
		}
		if segStartPage > 0 {
			opts.StartPage = segStartPage
		}
		if segStartLine > 0 {
			opts.StartLine = segStartLine
		}

		ext, err := pipeline.NewProcessingService(nil, cfg, nil, nil, logger).Extract(opts)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(ext.Records)
	},
}

func init() {
	segmentCmd.Flags().StringVarP(&segInput, "input", "i", "", "Portfolio file (pdf, txt or eml)")
	segmentCmd.Flags().StringVarP(&segType, "type", "t", "", "Input type: pdf, text or eml (detected when empty)")
	segmentCmd.Flags().IntVar(&segStartPage, "start-page", 0, "First PDF page to read (default PDF_START_PAGE)")
	segmentCmd.Flags().IntVar(&segStartLine, "start-line", 0, "First text line to segment (default START_LINE)")
	_ = segmentCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(segmentCmd)
}
