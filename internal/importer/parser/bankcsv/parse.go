// Package bankcsv reads bank-exported CSV files into raw rows.
package bankcsv

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Parse reads all rows of a CSV file. When skipHeader is set, the first
// line is read and discarded.
//
// Rows are returned raw: coercing cells into transaction fields is the
// importer's job, because the column mapping is not known here.
func Parse(f io.Reader, skipHeader bool) ([][]string, error) {
	reader := csv.NewReader(f)

	// Bank exports are frequently ragged, let the mapping deal with
	// missing cells instead of rejecting the file
	reader.FieldsPerRecord = -1

	if skipHeader {
		_, err := reader.Read()
		if err == io.EOF {
			return [][]string{}, nil
		}
		if err != nil {
			return nil, csvReadError(reader, err)
		}
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvReadError(reader, err)
		}

		rows = append(rows, record)
	}

	return rows, nil
}

// Header reads only the first line of a CSV file, for building a column
// mapping from header names.
func Header(f io.Reader) ([]string, error) {
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	record, err := reader.Read()
	if err == io.EOF {
		return []string{}, nil
	}
	if err != nil {
		return nil, csvReadError(reader, err)
	}

	return record, nil
}

// csvReadError wraps an error with the line of the input it occurred in.
func csvReadError(r *csv.Reader, err error) error {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(1)

	return fmt.Errorf("error in line %d of the CSV: %w", line, err)
}
