package export

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Leads"

func writeXLSX(w io.Writer, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "F5F5F5"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"808080"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	if err := writeXLSXRow(f, 1, header); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(xlsxSheet, first, last, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		if err := writeXLSXRow(f, i+2, row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeXLSXRow(f *excelize.File, rowNum int, values []string) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(xlsxSheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}
