/*
Copyright 2025 GSTRecon Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package tabular parses uploaded invoice files (.xlsx or .csv) into raw
// rows keyed by their trimmed header names. It knows nothing about which
// columns are required; that check belongs to the caller.
package tabular

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/gstkit/gstrecon/model"
)

// File types understood by Read.
const (
	TypeXLSX = "xlsx"
	TypeCSV  = "csv"
)

// UnsupportedFileError is returned when a payload is neither a workbook nor
// CSV-shaped. Like a missing column, it is a precondition failure for the
// whole run.
type UnsupportedFileError struct {
	Filename string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("unable to detect file type of %s: expected .xlsx or .csv", e.Filename)
}

// Read parses a tabular file into its header row and data rows. The file
// type is detected by extension first, then by content. Unreadable tabular
// data is a fatal precondition failure for the whole run.
func Read(ctx context.Context, r io.Reader, filename string) ([]string, []model.RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error reading upload data")
	}

	fileType, err := DetectFileType(data, filename)
	if err != nil {
		return nil, nil, err
	}

	switch fileType {
	case TypeXLSX:
		return readXLSX(ctx, data)
	case TypeCSV:
		return readCSV(ctx, data)
	default:
		return nil, nil, errors.Errorf("unsupported file type: %s", fileType)
	}
}

// DetectFileType detects the file type by extension first, then by content.
func DetectFileType(data []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return TypeXLSX, nil
	case ".csv":
		return TypeCSV, nil
	}
	if fileType, ok := detectByContent(data); ok {
		return fileType, nil
	}
	return "", &UnsupportedFileError{Filename: filename}
}

// detectByContent inspects the payload itself: xlsx files are zip archives,
// CSV is recognized by a consistent comma-separated line structure.
func detectByContent(data []byte) (string, bool) {
	if bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		return TypeXLSX, true
	}
	if looksLikeCSV(data) {
		return TypeCSV, true
	}
	return "", false
}

// looksLikeCSV checks for at least two lines with a matching field count.
func looksLikeCSV(data []byte) bool {
	lines := bytes.Split(data, []byte("\n"))
	if len(lines) < 2 {
		return false
	}

	fields := bytes.Count(lines[0], []byte(",")) + 1
	for _, line := range lines[1:] {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if bytes.Count(line, []byte(","))+1 != fields {
			return false
		}
	}
	return fields > 1
}

// readXLSX reads the first sheet of a workbook. The first row is the header
// row; trailing short rows are padded with empty cells.
func readXLSX(ctx context.Context, data []byte) ([]string, []model.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, errors.Wrap(err, "error opening workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook contains no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, errors.Wrapf(err, "error reading sheet %q", sheets[0])
	}
	if len(rows) == 0 {
		return nil, nil, errors.New("workbook contains no header row")
	}

	return buildRows(ctx, rows[0], rows[1:])
}

// readCSV reads a comma-separated file. Ragged rows are tolerated; missing
// trailing cells become empty strings.
func readCSV(ctx context.Context, data []byte) ([]string, []model.RawRow, error) {
	csvReader := csv.NewReader(bufio.NewReader(bytes.NewReader(data)))
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err != nil {
		return nil, nil, errors.Wrap(err, "error reading CSV headers")
	}

	var records [][]string
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(err, "error reading CSV row")
		}
		records = append(records, record)
	}

	return buildRows(ctx, headers, records)
}

// buildRows maps each data row into a RawRow keyed by trimmed header name.
func buildRows(ctx context.Context, headers []string, data [][]string) ([]string, []model.RawRow, error) {
	trimmed := make([]string, len(headers))
	for i, h := range headers {
		trimmed[i] = strings.TrimSpace(h)
	}

	rows := make([]model.RawRow, 0, len(data))
	for n, record := range data {
		row := make(model.RawRow, len(trimmed))
		for i, header := range trimmed {
			if i < len(record) {
				row[header] = record[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)

		// Check for context cancellation every 1000 rows.
		if (n+1)%1000 == 0 {
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			default:
			}
		}
	}

	return trimmed, rows, nil
}
