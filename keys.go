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

import "github.com/gstkit/gstrecon/model"

// DeriveKeys computes the two composite identity keys of a normalized record:
//
//	fullKey    = invoiceNumber + gstin + date(DDMMYYYY) + taxableValue
//	partialKey = invoiceNumber + gstin + date(DDMMYYYY)
//
// A record with a sentinel date gets a date component unique to that record,
// so its keys can never collide with anything, not even another sentinel.
func DeriveKeys(rec model.InvoiceRecord) (fullKey, partialKey string) {
	date := rec.InvoiceDate.Compact()
	if !rec.InvoiceDate.Valid {
		date = "!" + string(rec.Source) + "!" + rec.SourceRowID
	}
	partialKey = rec.InvoiceNumber + rec.GSTIN + date
	fullKey = partialKey + rec.TaxableValue.String()
	return fullKey, partialKey
}

// WithKeys returns the record set with both identity keys attached.
func WithKeys(records []model.InvoiceRecord) []model.InvoiceRecord {
	for i := range records {
		records[i].FullKey, records[i].PartialKey = DeriveKeys(records[i])
	}
	return records
}
