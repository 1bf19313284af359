package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX пишет таблицу на один лист книги Excel
func WriteXLSX(path, sheet string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write XLSX %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to set row %d: %w", rowNum, err)
	}
	return nil
}
