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

// Package report assembles a reconciliation partition into an xlsx workbook,
// one sheet per non-empty category table.
package report

import (
	"io"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/gstkit/gstrecon/model"
)

var pairHeaders = []interface{}{
	"GSTR S.No", "Ledger S.No",
	"GSTIN of Supplier", "Trade/Legal Name", "Invoice Number", "Invoice Date",
	"GSTR Invoice Value", "Ledger Invoice Value", "Difference: Invoice Value",
	"GSTR Taxable Value", "Ledger Taxable Value", "Difference: Taxable Value",
	"GSTR IGST", "Ledger IGST", "Difference: IGST",
	"GSTR CGST", "Ledger CGST", "Difference: CGST",
	"GSTR SGST", "Ledger SGST", "Difference: SGST",
}

var mismatchHeaders = []interface{}{
	"GSTR S.No", "Ledger S.No", "Invoice Number",
	"GSTR GSTIN", "Ledger GSTIN",
	"GSTR Invoice Date", "Ledger Invoice Date",
	"GSTR Taxable Value", "Ledger Taxable Value",
	"Mismatch Reason",
}

// Build assembles the report workbook. Empty tables are skipped; a run where
// every table is empty yields a workbook with only the default sheet, which
// is a normal terminal state, not an error.
func Build(p *model.Partition) (*excelize.File, error) {
	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)
	added := false

	if len(p.Matched) > 0 {
		if err := writePairSheet(f, model.TableMatched, p.Matched); err != nil {
			return nil, err
		}
		added = true
	}
	if len(p.GSTROnly) > 0 {
		if err := writeOnlySheet(f, model.TableGSTROnly, "GSTR S.No", p.GSTROnly); err != nil {
			return nil, err
		}
		added = true
	}
	if len(p.LedgerOnly) > 0 {
		if err := writeOnlySheet(f, model.TableLedgerOnly, "Ledger S.No", p.LedgerOnly); err != nil {
			return nil, err
		}
		added = true
	}
	if len(p.ValueMismatched) > 0 {
		if err := writePairSheet(f, model.TableValueMismatched, p.ValueMismatched); err != nil {
			return nil, err
		}
		added = true
	}
	if len(p.NotMatching) > 0 {
		if err := writeMismatchSheet(f, model.TableNotMatching, p.NotMatching); err != nil {
			return nil, err
		}
		added = true
	}

	if added {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, errors.Wrap(err, "error removing default sheet")
		}
		f.SetActiveSheet(0)
	}
	return f, nil
}

// Write assembles the workbook and streams it to w.
func Write(p *model.Partition, w io.Writer) error {
	f, err := Build(p)
	if err != nil {
		return err
	}
	defer f.Close()
	return errors.Wrap(f.Write(w), "error writing workbook")
}

// SaveAs assembles the workbook and saves it to path.
func SaveAs(p *model.Partition, path string) error {
	f, err := Build(p)
	if err != nil {
		return err
	}
	defer f.Close()
	return errors.Wrapf(f.SaveAs(path), "error saving workbook to %s", path)
}

// writePairSheet writes the side-by-side layout shared by the matched and
// value-mismatched tables.
func writePairSheet(f *excelize.File, sheet string, pairs []model.MatchedPair) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrapf(err, "error creating sheet %q", sheet)
	}
	if err := setRow(f, sheet, 1, pairHeaders); err != nil {
		return err
	}
	for i, pair := range pairs {
		row := []interface{}{
			pair.GSTR.SourceRowID, pair.Ledger.SourceRowID,
			pair.GSTR.GSTIN, pair.GSTR.TradeName, pair.GSTR.InvoiceNumber, pair.GSTR.InvoiceDate.String(),
			amount(pair.GSTR.InvoiceValue), amount(pair.Ledger.InvoiceValue), amount(pair.Deltas.InvoiceValue),
			amount(pair.GSTR.TaxableValue), amount(pair.Ledger.TaxableValue), amount(pair.Deltas.TaxableValue),
			amount(pair.GSTR.IGST), amount(pair.Ledger.IGST), amount(pair.Deltas.IGST),
			amount(pair.GSTR.CGST), amount(pair.Ledger.CGST), amount(pair.Deltas.CGST),
			amount(pair.GSTR.SGST), amount(pair.Ledger.SGST), amount(pair.Deltas.SGST),
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// writeMismatchSheet writes the tier-3 table: identity fields side by side
// plus the mismatch reason label.
func writeMismatchSheet(f *excelize.File, sheet string, pairs []model.MismatchPair) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrapf(err, "error creating sheet %q", sheet)
	}
	if err := setRow(f, sheet, 1, mismatchHeaders); err != nil {
		return err
	}
	for i, pair := range pairs {
		row := []interface{}{
			pair.GSTR.SourceRowID, pair.Ledger.SourceRowID, pair.GSTR.InvoiceNumber,
			pair.GSTR.GSTIN, pair.Ledger.GSTIN,
			pair.GSTR.InvoiceDate.String(), pair.Ledger.InvoiceDate.String(),
			amount(pair.GSTR.TaxableValue), amount(pair.Ledger.TaxableValue),
			pair.Reason,
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// writeOnlySheet writes one side's unmatched records: the normalized row
// minus the internal key columns, with the S.No column first.
func writeOnlySheet(f *excelize.File, sheet, serialHeader string, records []model.InvoiceRecord) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrapf(err, "error creating sheet %q", sheet)
	}
	headers := []interface{}{
		serialHeader,
		model.ColGSTIN, model.ColTradeName, model.ColInvoiceNumber, model.ColInvoiceDate,
		model.ColInvoiceValue, model.ColTaxableValue, model.ColIGST, model.ColCGST, model.ColSGST,
	}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}
	for i, rec := range records {
		row := []interface{}{
			rec.SourceRowID,
			rec.GSTIN, rec.TradeName, rec.InvoiceNumber, rec.InvoiceDate.String(),
			amount(rec.InvoiceValue), amount(rec.TaxableValue),
			amount(rec.IGST), amount(rec.CGST), amount(rec.SGST),
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// setRow writes one row of cells starting at column A.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Wrap(err, "error computing cell coordinates")
	}
	return errors.Wrapf(f.SetSheetRow(sheet, cell, &values), "error writing row %d of %q", row, sheet)
}

// amount renders a decimal as a numeric cell value.
func amount(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
