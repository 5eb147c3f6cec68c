// Package ingest acquires raw spreadsheet tables. Every source (local
// file, uploaded bytes, remote export URL, Google Sheets range) ends up as
// a [][]string in source row order; typing is the normalizers' job.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"
)

// Parse converts a spreadsheet export into a raw table, dispatching on the
// file extension. Supported formats: .xlsx, .xls, .csv.
func Parse(name string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls":
		return parseXLSX(data)
	case ".csv":
		return parseCSV(data)
	default:
		return nil, fmt.Errorf("unsupported spreadsheet format %q", filepath.Ext(name))
	}
}

func parseCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read: %w", err)
	}
	return records, nil
}

// PadRows right-pads short rows with empty cells up to width. Spreadsheet
// readers omit trailing empty cells, which would otherwise trip the
// normalizers' strict column-count contract.
func PadRows(rows [][]string, width int) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) >= width {
			out[i] = row
			continue
		}
		padded := make([]string, width)
		copy(padded, row)
		out[i] = padded
	}
	return out
}

// DropHeader removes the first row, the positional header whose names the
// pipeline ignores by contract.
func DropHeader(rows [][]string) [][]string {
	if len(rows) == 0 {
		return rows
	}
	return rows[1:]
}
