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
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gstkit/gstrecon/model"
)

// MissingColumnError is the fatal precondition failure raised when a required
// column is absent from one of the sources. No partition is produced.
type MissingColumnError struct {
	Source model.Source
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column in %s file: '%s'", e.Source, e.Column)
}

// dateLayouts are tried in order when parsing invoice dates. Day-first, per
// the template contract, with an ISO fallback for exports that use it.
var dateLayouts = []string{
	"02-01-2006",
	"2-1-2006",
	"02/01/2006",
	"2/1/2006",
	"02-01-06",
	"2006-01-02",
}

// ValidateColumns checks once, up front, that every required column is
// present in the given header row (names compared after trimming). The first
// missing column aborts the whole run.
func ValidateColumns(source model.Source, headers []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.TrimSpace(h)] = true
	}
	for _, col := range model.RequiredColumns {
		if !present[col] {
			return &MissingColumnError{Source: source, Column: col}
		}
	}
	return nil
}

// Normalize cleans and coerces a raw record set. It never fails at the row
// level: an unparseable date becomes the sentinel, an unparseable or empty
// amount becomes 0, and the row still participates in matching.
func Normalize(source model.Source, rows []model.RawRow) []model.InvoiceRecord {
	records := make([]model.InvoiceRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.InvoiceRecord{
			Source:        source,
			SourceRowID:   strings.TrimSpace(row[model.ColSerialNo]),
			GSTIN:         cleanString(row[model.ColGSTIN]),
			TradeName:     strings.TrimSpace(row[model.ColTradeName]),
			InvoiceNumber: cleanString(row[model.ColInvoiceNumber]),
			InvoiceDate:   parseDate(row[model.ColInvoiceDate]),
			InvoiceValue:  cleanAmount(row[model.ColInvoiceValue]),
			TaxableValue:  cleanAmount(row[model.ColTaxableValue]),
			IGST:          parseAmount(row[model.ColIGST]),
			CGST:          parseAmount(row[model.ColCGST]),
			SGST:          parseAmount(row[model.ColSGST]),
		})
	}
	return records
}

// cleanString trims and uppercases an identifier field.
func cleanString(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// parseDate parses a day-first calendar date. Failure yields the sentinel,
// never an error.
func parseDate(s string) model.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.NewDate(t)
		}
	}
	return model.Date{}
}

// cleanAmount strips every rune other than digits and decimal points before
// parsing. Currency symbols and thousands separators are data, not errors;
// anything still unparseable (for instance two decimal points) is 0.
func cleanAmount(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return parseAmount(b.String())
}

// parseAmount parses a numeric field directly; failure or emptiness is 0.
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
