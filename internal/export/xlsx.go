package export

import (
	"fmt"
	"io"

	"github.com/danbikim/askdb/internal"
	"github.com/xuri/excelize/v2"
)

const xlsxSheetName = "Results"

// XLSXExporter writes result rows as a spreadsheet workbook with a
// header row followed by one row per record.
type XLSXExporter struct{}

// Export writes the result set as an xlsx workbook.
func (e *XLSXExporter) Export(rows []internal.Row, w io.Writer) error {
	columns := columnsOf(rows)
	if len(columns) == 0 {
		return fmt.Errorf("no rows to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}

	for r, row := range rows {
		cells := make([]interface{}, len(columns))
		for i, col := range columns {
			cells[i] = row.Value(col)
		}
		if err := setRow(f, r+2, cells); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// Extension returns the file extension for this format.
func (e *XLSXExporter) Extension() string {
	return "xlsx"
}

func setRow(f *excelize.File, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(xlsxSheetName, cell, &values)
}
