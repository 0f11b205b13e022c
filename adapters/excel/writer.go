package excel

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"genoscope/domain/enrich"
)

const sheetName = "Enrichment"

var headers = []string{"Source", "Term ID", "Name", "P-value", "Term size", "Intersection size", "Genes"}

// Writer serializes an assembled result table into an Excel workbook. The
// table's cells are already primitive-typed, so each row maps straight
// onto one spreadsheet row with the gene list joined into a single cell.
type Writer struct{}

// NewWriter creates an Excel writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write renders the table into workbook bytes ready for download.
func (w *Writer) Write(table enrich.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[Excel] Failed to close workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range table {
		values := []interface{}{
			row.Source,
			row.TermID,
			row.Name,
			row.PValue,
			row.TermSize,
			row.IntersectionSize,
			strings.Join(row.Genes, "; "),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	// Widen the name and gene-list columns so exports open readable.
	if err := f.SetColWidth(sheetName, "C", "C", 48); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "G", "G", 60); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	log.Printf("[Excel] Wrote workbook with %d data row(s)", len(table))
	return buf.Bytes(), nil
}

// WriteFile renders the table and saves it at path (CLI export).
func (w *Writer) WriteFile(table enrich.Table, path string) error {
	data, err := w.Write(table)
	if err != nil {
		return err
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to reopen workbook: %w", err)
	}
	defer f.Close()

	return f.SaveAs(path)
}
