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
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gstkit/gstrecon/model"
)

// Mismatch reason labels, concatenated in predicate order.
const (
	ReasonGSTIN   = "GSTIN mismatch"
	ReasonDate    = "Date mismatch"
	ReasonTaxable = "Taxable Value mismatch"
)

// classifyMismatch evaluates the three tier-3 predicates in fixed order and
// renders the comma-separated reason label. A pair with no disagreement
// returns ("", false) and is not retained by tier 3.
func classifyMismatch(gstr, ledger model.InvoiceRecord, tolerance decimal.Decimal) (string, bool) {
	var reasons []string
	if gstr.GSTIN != ledger.GSTIN {
		reasons = append(reasons, ReasonGSTIN)
	}
	if !gstr.InvoiceDate.Equal(ledger.InvoiceDate) {
		reasons = append(reasons, ReasonDate)
	}
	if taxableDiffers(gstr, ledger, tolerance) {
		reasons = append(reasons, ReasonTaxable)
	}
	if len(reasons) == 0 {
		return "", false
	}
	return strings.Join(reasons, ", "), true
}

// taxableDiffers applies the fixed tolerance: a difference of exactly the
// tolerance is still rounding noise, strictly more is a mismatch.
func taxableDiffers(gstr, ledger model.InvoiceRecord, tolerance decimal.Decimal) bool {
	return gstr.TaxableValue.Sub(ledger.TaxableValue).Abs().GreaterThan(tolerance)
}
