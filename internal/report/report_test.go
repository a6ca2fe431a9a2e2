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
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gstkit/gstrecon/model"
)

func sampleRecord(source model.Source, id string) model.InvoiceRecord {
	return model.InvoiceRecord{
		Source:        source,
		SourceRowID:   id,
		GSTIN:         "27AAACB1234C1Z5",
		TradeName:     "ACME TRADERS",
		InvoiceNumber: "INV-001",
		InvoiceDate:   model.NewDate(time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)),
		InvoiceValue:  decimal.NewFromInt(1180),
		TaxableValue:  decimal.NewFromInt(1000),
		IGST:          decimal.NewFromInt(180),
	}
}

func samplePartition() *model.Partition {
	g := sampleRecord(model.SourceGSTR, "1")
	l := sampleRecord(model.SourceLedger, "5")
	return &model.Partition{
		Matched: []model.MatchedPair{{GSTR: g, Ledger: l, Tier: model.TierExact}},
		NotMatching: []model.MismatchPair{{
			GSTR:   sampleRecord(model.SourceGSTR, "2"),
			Ledger: sampleRecord(model.SourceLedger, "6"),
			Reason: "Date mismatch",
		}},
		GSTROnly:   []model.InvoiceRecord{sampleRecord(model.SourceGSTR, "3")},
		LedgerOnly: []model.InvoiceRecord{sampleRecord(model.SourceLedger, "7")},
	}
}

func reopen(t *testing.T, p *model.Partition) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(p, &buf))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestBuildSkipsEmptyTables(t *testing.T) {
	f := reopen(t, samplePartition())

	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{
		model.TableMatched,
		model.TableNotMatching,
		model.TableGSTROnly,
		model.TableLedgerOnly,
	}, sheets)
	assert.NotContains(t, sheets, model.TableValueMismatched)
}

func TestBuildSheetOrder(t *testing.T) {
	p := samplePartition()
	p.ValueMismatched = []model.MatchedPair{{
		GSTR:   sampleRecord(model.SourceGSTR, "4"),
		Ledger: sampleRecord(model.SourceLedger, "8"),
		Tier:   model.TierValue,
	}}

	f := reopen(t, p)
	assert.Equal(t, []string{
		model.TableMatched,
		model.TableGSTROnly,
		model.TableLedgerOnly,
		model.TableValueMismatched,
		model.TableNotMatching,
	}, f.GetSheetList())
}

func TestBuildPairSheet(t *testing.T) {
	f := reopen(t, samplePartition())

	rows, err := f.GetRows(model.TableMatched)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "GSTR S.No", rows[0][0])
	assert.Equal(t, "Ledger S.No", rows[0][1])
	assert.Equal(t, "Difference: SGST", rows[0][20])

	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "5", rows[1][1])
	assert.Equal(t, "27AAACB1234C1Z5", rows[1][2])
	assert.Equal(t, "15-04-2025", rows[1][5])
	assert.Equal(t, "1180", rows[1][6])
}

func TestBuildMismatchSheet(t *testing.T) {
	f := reopen(t, samplePartition())

	rows, err := f.GetRows(model.TableNotMatching)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Mismatch Reason", rows[0][9])
	assert.Equal(t, "Date mismatch", rows[1][9])
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "6", rows[1][1])
}

func TestBuildOnlySheets(t *testing.T) {
	f := reopen(t, samplePartition())

	rows, err := f.GetRows(model.TableGSTROnly)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "GSTR S.No", rows[0][0])
	assert.Equal(t, "3", rows[1][0])

	rows, err = f.GetRows(model.TableLedgerOnly)
	require.NoError(t, err)
	assert.Equal(t, "Ledger S.No", rows[0][0])
	assert.Equal(t, "7", rows[1][0])
}

func TestBuildEmptyPartition(t *testing.T) {
	f, err := Build(&model.Partition{})
	require.NoError(t, err)
	defer f.Close()

	// a workbook needs at least one sheet, so the default one stays
	assert.Len(t, f.GetSheetList(), 1)
}

func TestBuildTemplate(t *testing.T) {
	f, err := BuildTemplate()
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for i, col := range model.RequiredColumns {
		assert.Equal(t, col, rows[0][i])
	}
	assert.Equal(t, "INV-001", rows[1][3])
	assert.Equal(t, "01-04-2025", rows[1][4])
}

func TestWriteTemplates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteTemplates(dir))

	for _, filename := range TemplateNames {
		f, err := excelize.OpenFile(dir + "/" + filename)
		require.NoError(t, err)
		rows, err := f.GetRows(f.GetSheetName(0))
		require.NoError(t, err)
		assert.Len(t, rows, 3)
		require.NoError(t, f.Close())
	}
}
