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
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gstkit/gstrecon/internal/tabular"
	"github.com/gstkit/gstrecon/model"
)

// Recon is the reconciliation service. One instance can serve any number of
// runs; each run is a stateless batch over two fresh inputs and keeps no
// state behind.
type Recon struct {
	log *logrus.Logger
}

// NewRecon initializes a new Recon service with the standard logger.
func NewRecon() *Recon {
	return &Recon{log: logrus.StandardLogger()}
}

// Run executes a full reconciliation over two uploaded tabular files:
// parse, validate required columns, normalize, derive keys, match.
//
// Fatal precondition failures (unreadable tabular data, missing required
// column) abort before any matching occurs and produce no partition at all.
// Row-level coercion fallbacks are not errors.
func (s *Recon) Run(ctx context.Context, gstr io.Reader, gstrName string, ledger io.Reader, ledgerName string) (*model.Partition, error) {
	runID := model.GenerateUUIDWithSuffix("recon")
	started := time.Now()

	gstrRecords, err := s.loadSource(ctx, model.SourceGSTR, gstr, gstrName)
	if err != nil {
		return nil, err
	}
	ledgerRecords, err := s.loadSource(ctx, model.SourceLedger, ledger, ledgerName)
	if err != nil {
		return nil, err
	}

	partition := Match(gstrRecords, ledgerRecords)
	partition.Summary.RunID = runID
	partition.Summary.StartedAt = started
	partition.Summary.CompletedAt = time.Now()

	s.log.WithFields(logrus.Fields{
		"run_id":           runID,
		"gstr_records":     partition.Summary.GSTRRecords,
		"ledger_records":   partition.Summary.LedgerRecords,
		"matched":          partition.Summary.Matched,
		"value_mismatched": partition.Summary.ValueMismatched,
		"not_matching":     partition.Summary.NotMatching,
		"gstr_only":        partition.Summary.GSTROnly,
		"ledger_only":      partition.Summary.LedgerOnly,
		"duration":         time.Since(started).String(),
	}).Info("reconciliation completed")

	return partition, nil
}

// loadSource parses one tabular source and prepares its normalized, keyed
// record set.
func (s *Recon) loadSource(ctx context.Context, source model.Source, r io.Reader, filename string) ([]model.InvoiceRecord, error) {
	headers, rows, err := tabular.Read(ctx, r, filename)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading %s file", source)
	}
	if err := ValidateColumns(source, headers); err != nil {
		return nil, err
	}

	records := WithKeys(Normalize(source, rows))

	if n := countSentinelDates(records); n > 0 {
		s.log.WithFields(logrus.Fields{
			"source": source,
			"rows":   n,
		}).Warn("rows with unparseable invoice dates will not match on date")
	}
	return records, nil
}

func countSentinelDates(records []model.InvoiceRecord) int {
	n := 0
	for _, r := range records {
		if !r.InvoiceDate.Valid {
			n++
		}
	}
	return n
}
