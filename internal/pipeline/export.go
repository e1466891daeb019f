package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/unb-mds/2025-2-Mural-UnB/internal"
)

var exportHeaders = []string{"id", "name", "coordinator", "contact", "description", "imagePath"}

func exportRow(r internal.EnrichedRecord) []string {
	return []string{r.ID, r.Name, r.Coordinator, r.Contact, r.Description, r.ImagePath}
}

// ExportRecords picks the writer from the output extension.
func ExportRecords(records []internal.EnrichedRecord, outputPath string) error {
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".csv":
		return ExportRecordsToCSV(records, outputPath)
	case ".xlsx":
		return ExportRecordsToXLSX(records, outputPath)
	default:
		return fmt.Errorf("unsupported output format %q (want .csv or .xlsx)", outputPath)
	}
}

func ExportRecordsToCSV(records []internal.EnrichedRecord, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeaders); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write(exportRow(r)); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func ExportRecordsToXLSX(records []internal.EnrichedRecord, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, rec := range records {
		r := i + 2
		for col, value := range exportRow(rec) {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			_ = f.SetCellStr(sheet, cell, value)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
