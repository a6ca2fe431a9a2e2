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

	"github.com/gstkit/gstrecon/model"
)

func TestDeriveKeys(t *testing.T) {
	rec := gstrRecord("1", "27AAACB1234C1Z5", "INV-001", "15-04-2025", "1000.50")

	full, partial := DeriveKeys(rec)
	assert.Equal(t, "INV-00127AAACB1234C1Z515042025", partial)
	assert.Equal(t, partial+"1000.5", full)
}

func TestDeriveKeysAgreeAcrossSources(t *testing.T) {
	g := gstrRecord("7", "27AAACB1234C1Z5", "INV-001", "15-04-2025", "1000")
	l := ledgerRecord("42", "27AAACB1234C1Z5", "INV-001", "15-04-2025", "1000")

	assert.Equal(t, g.FullKey, l.FullKey)
	assert.Equal(t, g.PartialKey, l.PartialKey)
}

// Sentinel-date keys embed the source and row id, so two unparseable rows can
// never collide with each other or with anything else.
func TestDeriveKeysSentinelNeverCollides(t *testing.T) {
	a := gstrRecord("1", "27AAACB1234C1Z5", "INV-001", "bad", "1000")
	b := gstrRecord("2", "27AAACB1234C1Z5", "INV-001", "bad", "1000")
	c := ledgerRecord("1", "27AAACB1234C1Z5", "INV-001", "bad", "1000")

	assert.NotEqual(t, a.FullKey, b.FullKey)
	assert.NotEqual(t, a.FullKey, c.FullKey)
	assert.NotEqual(t, a.PartialKey, b.PartialKey)
	assert.NotEqual(t, a.PartialKey, c.PartialKey)
}

func TestWithKeys(t *testing.T) {
	records := []model.InvoiceRecord{
		{Source: model.SourceGSTR, SourceRowID: "1", GSTIN: "27AAACB1234C1Z5", InvoiceNumber: "INV-001"},
	}
	records = WithKeys(records)
	assert.NotEmpty(t, records[0].FullKey)
	assert.NotEmpty(t, records[0].PartialKey)
}
