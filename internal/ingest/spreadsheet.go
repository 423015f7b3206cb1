package ingest

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ParseSpreadsheet reads the first worksheet of an XLSX workbook; its first
// non-blank row is the header.
func ParseSpreadsheet(content []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, errNoHeader
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	rows = trimmedRows(rows)
	if len(rows) == 0 {
		return Table{}, errNoHeader
	}
	columns := headerLabels(rows[0])

	data := make([][]string, 0, len(rows)-1)
	for _, r := range rows[1:] {
		if len(r) > len(columns) {
			continue
		}
		data = append(data, r)
	}
	return NewTable(columns, data), nil
}
