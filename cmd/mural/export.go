package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unb-mds/2025-2-Mural-UnB/internal/pipeline"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/storage"
)

var (
	exportRun string
	exportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Rewrite the records of a stored run as CSV or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup()
		if err != nil {
			return err
		}
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		runID := exportRun
		if runID == "" || runID == "latest" {
			runID, err = db.LatestRunID()
			if err != nil {
				return err
			}
			if runID == "" {
				return fmt.Errorf("no runs stored in %s", cfg.DBPath)
			}
		}

		records, err := db.ListRecords(runID)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return fmt.Errorf("no records for run %s", runID)
		}
		if err := pipeline.ExportRecords(records, exportOut); err != nil {
			return err
		}
		renderExport(cmd.OutOrStdout(), runID, len(records), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportRun, "run", "latest", "Run id, or latest")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (.csv or .xlsx)")
	_ = exportCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(exportCmd)
}
