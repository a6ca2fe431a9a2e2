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
	"fmt"

	"github.com/google/uuid"
)

// Source identifies which of the two record sets a row came from.
type Source string

const (
	// SourceGSTR is the statutory source, the supplier-reported purchase
	// statement (GSTR-2B).
	SourceGSTR Source = "gstr2b"
	// SourceLedger is the buyer's own accounting records.
	SourceLedger Source = "ledger"
)

// Canonical column names. Presence of every one of them (by exact name,
// after trimming) is mandatory in both sources.
const (
	ColSerialNo      = "S.No"
	ColGSTIN         = "GSTIN of Supplier"
	ColTradeName     = "Trade/Legal Name"
	ColInvoiceNumber = "Invoice Number"
	ColInvoiceDate   = "Invoice Date"
	ColInvoiceValue  = "Invoice Value"
	ColTaxableValue  = "Taxable Value"
	ColIGST          = "IGST"
	ColCGST          = "CGST"
	ColSGST          = "SGST"
)

// RequiredColumns lists every column both sources must carry, in the
// canonical template order.
var RequiredColumns = []string{
	ColSerialNo,
	ColGSTIN,
	ColTradeName,
	ColInvoiceNumber,
	ColInvoiceDate,
	ColInvoiceValue,
	ColTaxableValue,
	ColIGST,
	ColCGST,
	ColSGST,
}

// Names of the five output tables.
const (
	TableMatched         = "Matched Invoices"
	TableGSTROnly        = "GSTR-Only"
	TableLedgerOnly      = "Ledger-Only"
	TableValueMismatched = "Value Mismatched"
	TableNotMatching     = "Not Matching"
)

// RawRow is one unprocessed input row: cell text keyed by canonical column
// name. Cells missing from a short row are empty strings.
type RawRow map[string]string

// GenerateUUIDWithSuffix generates a new UUID and prefixes it with the given
// module name, e.g. "recon_9a0c...".
func GenerateUUIDWithSuffix(module string) string {
	id := uuid.New()
	return fmt.Sprintf("%s_%s", module, id.String())
}
