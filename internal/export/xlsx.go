package export

import (
	"github.com/xuri/excelize/v2"

	"github.com/geoprumo/route-service/internal/core/domain"
)

const sheetName = "Rota"

// XLSX renders the CSV columns into a single worksheet.
func XLSX(points []domain.Point) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, err
	}
	if err := setRow(f, 1, csvHeader); err != nil {
		return nil, err
	}
	for i, p := range points {
		if err := setRow(f, i+2, csvRow(p)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheetName, cell, &values)
}
