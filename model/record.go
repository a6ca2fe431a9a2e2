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
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tier is the precedence level of the matching algorithm that produced a
// pair. Lower tiers are stricter and always win.
type Tier string

const (
	TierExact       Tier = "exact"
	TierValue       Tier = "value_mismatch"
	TierInvoiceOnly Tier = "invoice_only"
)

// InvoiceRecord is one row from either source after normalization. String
// fields are trimmed and uppercased, amounts are coerced (failures become 0)
// and the date carries an explicit unparseable sentinel.
type InvoiceRecord struct {
	Source        Source          `json:"source"`
	SourceRowID   string          `json:"source_row_id"`
	GSTIN         string          `json:"gstin"`
	TradeName     string          `json:"trade_name"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   Date            `json:"invoice_date"`
	InvoiceValue  decimal.Decimal `json:"invoice_value"`
	TaxableValue  decimal.Decimal `json:"taxable_value"`
	IGST          decimal.Decimal `json:"igst"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`

	// Derived identity keys. FullKey is invoice number + GSTIN + compact
	// date + taxable value; PartialKey drops the taxable value.
	FullKey    string `json:"-"`
	PartialKey string `json:"-"`
}

// Deltas holds the per-field ledger-minus-GSTR differences of a pair,
// rounded to 2 decimals.
type Deltas struct {
	InvoiceValue decimal.Decimal `json:"invoice_value"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	IGST         decimal.Decimal `json:"igst"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
}

// MatchedPair associates one GSTR record with one ledger record, tagged with
// the tier that produced it. Tiers 1 and 2 emit these.
type MatchedPair struct {
	GSTR   InvoiceRecord `json:"gstr"`
	Ledger InvoiceRecord `json:"ledger"`
	Tier   Tier          `json:"tier"`
	Deltas Deltas        `json:"deltas"`
}

// MismatchPair is a tier-3 candidate pair that shares an invoice number but
// disagrees on GSTIN, date or taxable value. Reason is the human-readable,
// comma-separated label of the disagreeing fields.
type MismatchPair struct {
	GSTR   InvoiceRecord `json:"gstr"`
	Ledger InvoiceRecord `json:"ledger"`
	Reason string        `json:"reason"`
}

// Partition is the five-way disjoint outcome of one reconciliation run.
// Every input record lands in exactly one table.
type Partition struct {
	Matched         []MatchedPair   `json:"matched"`
	ValueMismatched []MatchedPair   `json:"value_mismatched"`
	NotMatching     []MismatchPair  `json:"not_matching"`
	GSTROnly        []InvoiceRecord `json:"gstr_only"`
	LedgerOnly      []InvoiceRecord `json:"ledger_only"`
	Summary         RunSummary      `json:"summary"`
}

// RunSummary carries the run metadata reported alongside the partition.
type RunSummary struct {
	RunID           string    `json:"run_id"`
	StartedAt       time.Time `json:"started_at"`
	CompletedAt     time.Time `json:"completed_at"`
	GSTRRecords     int       `json:"gstr_records"`
	LedgerRecords   int       `json:"ledger_records"`
	Matched         int       `json:"matched"`
	ValueMismatched int       `json:"value_mismatched"`
	NotMatching     int       `json:"not_matching"`
	GSTROnly        int       `json:"gstr_only"`
	LedgerOnly      int       `json:"ledger_only"`
}
