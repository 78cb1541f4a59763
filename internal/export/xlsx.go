package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet that holds exported rows.
const SheetName = "Recap"

func newWorkbook(ds *Dataset) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	if err := setRow(f, 1, ds.Columns); err != nil {
		f.Close()
		return nil, err
	}
	for i, row := range ds.Rows {
		if err := setRow(f, i+2, row); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func setRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", rowNum, err)
	}
	return nil
}

// WriteXLSX saves ds as a workbook at path.
func WriteXLSX(path string, ds *Dataset) error {
	f, err := newWorkbook(ds)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
