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
	"github.com/shopspring/decimal"

	"github.com/gstkit/gstrecon/model"
)

// TaxableValueTolerance distinguishes a genuine taxable-value mismatch from
// rounding noise. A difference of exactly 0.01 is not a mismatch; the check
// is strictly greater-than.
var TaxableValueTolerance = decimal.New(1, -2)

// matcher holds the run-scoped state of one matching pass: the two consumed
// sets, keyed by source row ID. Each invocation of Match gets fresh sets;
// nothing survives the run.
type matcher struct {
	tolerance      decimal.Decimal
	consumedGSTR   map[string]bool
	consumedLedger map[string]bool
}

func newMatcher(tolerance decimal.Decimal) *matcher {
	return &matcher{
		tolerance:      tolerance,
		consumedGSTR:   make(map[string]bool),
		consumedLedger: make(map[string]bool),
	}
}

// Match consumes two normalized, keyed record sets and produces the five-way
// disjoint partition by applying the match tiers in strict descending
// priority. A record that could match at multiple tiers is resolved at the
// earliest tier for which a partner exists and never considered again.
//
// Pairing within a tier is an explicit per-key cross product: if a key has m
// GSTR records and n ledger records, all m*n pairs are emitted. Duplicate
// keys can therefore legitimately produce more output rows than input rows.
func Match(gstr, ledger []model.InvoiceRecord) *model.Partition {
	m := newMatcher(TaxableValueTolerance)

	p := &model.Partition{}
	p.Matched = m.exactTier(gstr, ledger)
	p.ValueMismatched = m.valueTier(gstr, ledger)
	p.NotMatching = m.invoiceOnlyTier(gstr, ledger)
	p.GSTROnly = m.remaining(gstr, m.consumedGSTR)
	p.LedgerOnly = m.remaining(ledger, m.consumedLedger)

	p.Summary = model.RunSummary{
		GSTRRecords:     len(gstr),
		LedgerRecords:   len(ledger),
		Matched:         len(p.Matched),
		ValueMismatched: len(p.ValueMismatched),
		NotMatching:     len(p.NotMatching),
		GSTROnly:        len(p.GSTROnly),
		LedgerOnly:      len(p.LedgerOnly),
	}
	return p
}

// exactTier pairs records agreeing on the full key (invoice number, GSTIN,
// date and taxable value). Every pair is a match; both sides are consumed.
func (m *matcher) exactTier(gstr, ledger []model.InvoiceRecord) []model.MatchedPair {
	gstrRecs := m.unconsumed(gstr, m.consumedGSTR)
	ledgerGroups := groupBy(m.unconsumed(ledger, m.consumedLedger), func(r model.InvoiceRecord) string {
		return r.FullKey
	})

	var pairs []model.MatchedPair
	for _, a := range gstrRecs {
		for _, b := range ledgerGroups[a.FullKey] {
			pairs = append(pairs, model.MatchedPair{
				GSTR:   a,
				Ledger: b,
				Tier:   model.TierExact,
				Deltas: computeDeltas(a, b),
			})
			m.consumedGSTR[a.SourceRowID] = true
			m.consumedLedger[b.SourceRowID] = true
		}
	}
	return pairs
}

// valueTier pairs still-unconsumed records agreeing on the partial key but
// differing in taxable value beyond the tolerance. Pairs inside the
// tolerance are rounding noise: they are not emitted and not consumed.
func (m *matcher) valueTier(gstr, ledger []model.InvoiceRecord) []model.MatchedPair {
	gstrRecs := m.unconsumed(gstr, m.consumedGSTR)
	ledgerGroups := groupBy(m.unconsumed(ledger, m.consumedLedger), func(r model.InvoiceRecord) string {
		return r.PartialKey
	})

	var pairs []model.MatchedPair
	for _, a := range gstrRecs {
		for _, b := range ledgerGroups[a.PartialKey] {
			if !taxableDiffers(a, b, m.tolerance) {
				continue
			}
			pairs = append(pairs, model.MatchedPair{
				GSTR:   a,
				Ledger: b,
				Tier:   model.TierValue,
				Deltas: computeDeltas(a, b),
			})
			m.consumedGSTR[a.SourceRowID] = true
			m.consumedLedger[b.SourceRowID] = true
		}
	}
	return pairs
}

// invoiceOnlyTier pairs still-unconsumed records sharing only an invoice
// number, retaining a pair when GSTIN, date or taxable value disagrees.
// Grouping by this weaker key can surface the same row-id combination more
// than once before consumption bookkeeping catches up, so retained pairs are
// deduplicated by (GSTR row id, ledger row id), first occurrence wins.
func (m *matcher) invoiceOnlyTier(gstr, ledger []model.InvoiceRecord) []model.MismatchPair {
	gstrRecs := m.unconsumed(gstr, m.consumedGSTR)
	ledgerGroups := groupBy(m.unconsumed(ledger, m.consumedLedger), func(r model.InvoiceRecord) string {
		return r.InvoiceNumber
	})

	var pairs []model.MismatchPair
	seen := make(map[string]bool)
	for _, a := range gstrRecs {
		for _, b := range ledgerGroups[a.InvoiceNumber] {
			reason, mismatched := classifyMismatch(a, b, m.tolerance)
			if !mismatched {
				continue
			}
			pairKey := a.SourceRowID + "|" + b.SourceRowID
			if seen[pairKey] {
				continue
			}
			seen[pairKey] = true
			pairs = append(pairs, model.MismatchPair{GSTR: a, Ledger: b, Reason: reason})
			m.consumedGSTR[a.SourceRowID] = true
			m.consumedLedger[b.SourceRowID] = true
		}
	}
	return pairs
}

// unconsumed snapshots the records not yet assigned to a category, in input
// order. Tiers pair over the snapshot taken at tier entry, so consumption
// inside a tier never filters that tier's own cross products.
func (m *matcher) unconsumed(records []model.InvoiceRecord, consumed map[string]bool) []model.InvoiceRecord {
	out := make([]model.InvoiceRecord, 0, len(records))
	for _, r := range records {
		if !consumed[r.SourceRowID] {
			out = append(out, r)
		}
	}
	return out
}

// remaining is the terminal "-only" category for one side.
func (m *matcher) remaining(records []model.InvoiceRecord, consumed map[string]bool) []model.InvoiceRecord {
	var out []model.InvoiceRecord
	for _, r := range records {
		if !consumed[r.SourceRowID] {
			out = append(out, r)
		}
	}
	return out
}

// groupBy builds the key -> records map used for candidate lookup within a
// tier. Grouping is explicit so duplicate-key multiplicity stays visible.
func groupBy(records []model.InvoiceRecord, key func(model.InvoiceRecord) string) map[string][]model.InvoiceRecord {
	groups := make(map[string][]model.InvoiceRecord)
	for _, r := range records {
		k := key(r)
		groups[k] = append(groups[k], r)
	}
	return groups
}

// computeDeltas returns the ledger-minus-GSTR difference of each amount
// field, rounded to 2 decimals.
func computeDeltas(gstr, ledger model.InvoiceRecord) model.Deltas {
	return model.Deltas{
		InvoiceValue: ledger.InvoiceValue.Sub(gstr.InvoiceValue).Round(2),
		TaxableValue: ledger.TaxableValue.Sub(gstr.TaxableValue).Round(2),
		IGST:         ledger.IGST.Sub(gstr.IGST).Round(2),
		CGST:         ledger.CGST.Sub(gstr.CGST).Round(2),
		SGST:         ledger.SGST.Sub(gstr.SGST).Round(2),
	}
}
