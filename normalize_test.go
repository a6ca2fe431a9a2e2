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
package gstrecon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstkit/gstrecon/model"
)

func TestValidateColumns(t *testing.T) {
	headers := append([]string{}, model.RequiredColumns...)
	assert.NoError(t, ValidateColumns(model.SourceGSTR, headers))

	// extra columns and padding are fine
	headers = append(headers, "Remarks")
	headers[0] = "  " + headers[0] + " "
	assert.NoError(t, ValidateColumns(model.SourceGSTR, headers))
}

func TestValidateColumnsMissing(t *testing.T) {
	var headers []string
	for _, col := range model.RequiredColumns {
		if col == model.ColIGST {
			continue
		}
		headers = append(headers, col)
	}

	err := ValidateColumns(model.SourceGSTR, headers)
	require.Error(t, err)

	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, model.SourceGSTR, missing.Source)
	assert.Equal(t, model.ColIGST, missing.Column)
	assert.Equal(t, "missing required column in gstr2b file: 'IGST'", err.Error())
}

func TestNormalizeStringFields(t *testing.T) {
	rows := []model.RawRow{{
		model.ColSerialNo:      " 1 ",
		model.ColGSTIN:         " 27aaacb1234c1z5 ",
		model.ColTradeName:     "  Acme Traders  ",
		model.ColInvoiceNumber: "inv-001 ",
		model.ColInvoiceDate:   "15-04-2025",
		model.ColInvoiceValue:  "1180",
		model.ColTaxableValue:  "1000",
		model.ColIGST:          "180",
		model.ColCGST:          "",
		model.ColSGST:          "",
	}}

	records := Normalize(model.SourceGSTR, rows)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "1", rec.SourceRowID)
	assert.Equal(t, "27AAACB1234C1Z5", rec.GSTIN)
	assert.Equal(t, "Acme Traders", rec.TradeName)
	assert.Equal(t, "INV-001", rec.InvoiceNumber)
	assert.Equal(t, "15-04-2025", rec.InvoiceDate.String())
	assert.Equal(t, "180", rec.IGST.String())
	assert.True(t, rec.CGST.IsZero())
	assert.True(t, rec.SGST.IsZero())
}

func TestNormalizeAmountCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "1000", "1000"},
		{"thousands separators", "1,23,456.78", "123456.78"},
		{"currency symbol", "₹1234.50", "1234.5"},
		{"abbreviation dot kept", "Rs. 500/-", "0.5"},
		{"empty", "", "0"},
		{"garbage", "n/a", "0"},
		{"double decimal point", "12.34.56", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanAmount(tt.in)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNormalizeTaxAmountsNotCleaned(t *testing.T) {
	// IGST/CGST/SGST are parsed directly: formatted values fall back to 0.
	rows := []model.RawRow{{
		model.ColIGST: "₹180.00",
		model.ColCGST: "90.5",
	}}
	records := Normalize(model.SourceLedger, rows)
	require.Len(t, records, 1)
	assert.True(t, records[0].IGST.IsZero())
	assert.Equal(t, "90.5", records[0].CGST.String())
}

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"15-04-2025", "15-04-2025"},
		{"5-4-2025", "05-04-2025"},
		{"15/04/2025", "15-04-2025"},
		{"5/4/2025", "05-04-2025"},
		{"15-04-25", "15-04-2025"},
		{"2025-04-15", "15-04-2025"},
	}
	for _, tt := range tests {
		got := parseDate(tt.in)
		require.True(t, got.Valid, "expected %q to parse", tt.in)
		assert.Equal(t, tt.want, got.String())
	}
}

func TestParseDateSentinel(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date", "31-13-2025", "April 15, 2025"} {
		got := parseDate(in)
		assert.False(t, got.Valid, "expected %q to yield the sentinel", in)
		assert.Equal(t, "", got.String())
	}
}

func TestNormalizeMissingCellsAreZeroValues(t *testing.T) {
	records := Normalize(model.SourceGSTR, []model.RawRow{{}})
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "", rec.SourceRowID)
	assert.False(t, rec.InvoiceDate.Valid)
	assert.True(t, rec.TaxableValue.IsZero())
}
