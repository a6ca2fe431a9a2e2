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
package report

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/gstkit/gstrecon/model"
)

// TemplateNames maps the downloadable template identifiers to their
// filenames.
var TemplateNames = map[string]string{
	"gstr2b": "sample_gstr2b.xlsx",
	"tally":  "sample_tally.xlsx",
}

// BuildTemplate generates a sample input workbook: the required header row
// plus two illustrative rows in the expected formats (day-first dates,
// plain numerics, 15-character GSTIN).
func BuildTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := make([]interface{}, len(model.RequiredColumns))
	for i, col := range model.RequiredColumns {
		headers[i] = col
	}
	rows := [][]interface{}{
		headers,
		{1, "27AAAPA1234A1Z5", "ACME TRADERS", "INV-001", "01-04-2025", 1180.00, 1000.00, 0.00, 90.00, 90.00},
		{2, "29AABCU9603R1ZM", "UDUPI SUPPLIES", "INV-002", "15-04-2025", 590.00, 500.00, 90.00, 0.00, 0.00},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, errors.Wrap(err, "error computing cell coordinates")
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, errors.Wrapf(err, "error writing template row %d", i+1)
		}
	}
	return f, nil
}

// WriteTemplates saves both sample templates into dir.
func WriteTemplates(dir string) error {
	for _, filename := range TemplateNames {
		f, err := BuildTemplate()
		if err != nil {
			return err
		}
		path := filepath.Join(dir, filename)
		if err := f.SaveAs(path); err != nil {
			f.Close()
			return errors.Wrapf(err, "error saving template %s", path)
		}
		f.Close()
	}
	return nil
}
