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

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/gstkit/gstrecon/internal/report"
)

// reconcileCommands defines the "reconcile" command, which runs a single
// reconciliation over two local files and writes the report workbook.
func reconcileCommands(r *reconInstance) *cobra.Command {
	var gstrPath string
	var ledgerPath string
	var outPath string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "reconcile a GSTR-2B export against a purchase ledger export",
		Run: func(cmd *cobra.Command, args []string) {
			gstrFile, err := os.Open(gstrPath)
			if err != nil {
				log.Fatalf("Error opening GSTR-2B file: %v", err)
			}
			defer gstrFile.Close()

			ledgerFile, err := os.Open(ledgerPath)
			if err != nil {
				log.Fatalf("Error opening ledger file: %v", err)
			}
			defer ledgerFile.Close()

			partition, err := r.recon.Run(cmd.Context(), gstrFile, gstrPath, ledgerFile, ledgerPath)
			if err != nil {
				log.Fatalf("Reconciliation failed: %v", err)
			}

			if dryRun {
				summary, err := json.MarshalIndent(partition.Summary, "", "  ")
				if err != nil {
					log.Fatalf("Error encoding summary: %v", err)
				}
				fmt.Println(string(summary))
				return
			}

			if outPath == "" {
				outPath = r.cnf.Report.OutputFile
			}
			if err := report.SaveAs(partition, outPath); err != nil {
				log.Fatalf("Error writing report: %v", err)
			}
			log.Printf("Report written to %s\n", outPath)
		},
	}

	cmd.Flags().StringVar(&gstrPath, "gstr2b", "", "path to the GSTR-2B export (xlsx or csv)")
	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "path to the purchase ledger export (xlsx or csv)")
	cmd.Flags().StringVar(&outPath, "out", "", "path for the report workbook")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the run summary without writing a report")
	_ = cmd.MarkFlagRequired("gstr2b")
	_ = cmd.MarkFlagRequired("ledger")

	return cmd
}
