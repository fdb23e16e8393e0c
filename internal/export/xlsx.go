package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Publications"

// WriteXLSX mirrors the CSV dataset into <dir>/<YYYYMMDDHHMM>.xlsx with
// the same column order, for readers who want a spreadsheet rather than
// delimited text. Returns the path written.
func WriteXLSX(dir string, rows []Publication) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return "", fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("removing default sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return "", fmt.Errorf("writing header row: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("computing cell for row %d: %w", i, err)
		}
		values := make([]interface{}, 0, len(Columns))
		for _, v := range row.fields() {
			values = append(values, v)
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return "", fmt.Errorf("writing row for PMID %s: %w", row.PMID, err)
		}
	}

	path := filepath.Join(dir, Stamp()+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving XLSX file: %w", err)
	}

	return path, nil
}
