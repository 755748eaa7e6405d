package csvimport

import (
	"encoding/csv"
	"io"
	"strings"

	"econfeed/core/errs"
)

// Row is one parsed CSV data row keyed by header name.
type Row struct {
	// Line is the 1-based record ordinal in the file, header included.
	Line   int
	Fields map[string]string
}

// column is one kept header: its name and the value index it reads from.
type column struct {
	name  string
	index int
}

// Parse reads RFC4180-style CSV: quoted fields may contain the delimiter,
// embedded newlines, and doubled-quote escaping. The first non-blank record
// names the columns. Short rows are right-padded with "", long rows have
// the excess dropped, a blank header name drops that column from every row,
// and blank records are skipped.
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var columns []column
	var rows []Row
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.Validation("csv", "parse failed at record %d: %v", line+1, err)
		}
		line++

		if isBlank(record) {
			continue
		}

		if columns == nil {
			for i, name := range record {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				columns = append(columns, column{name: name, index: i})
			}
			if len(columns) == 0 {
				return nil, errs.Validation("csv", "header has no usable column names")
			}
			continue
		}

		fields := make(map[string]string, len(columns))
		for _, col := range columns {
			if col.index < len(record) {
				fields[col.name] = record[col.index]
			} else {
				fields[col.name] = ""
			}
		}
		rows = append(rows, Row{Line: line, Fields: fields})
	}

	if columns == nil {
		return nil, errs.Validation("csv", "file is empty")
	}

	return rows, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
