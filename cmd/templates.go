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
	"log"

	"github.com/spf13/cobra"

	"github.com/gstkit/gstrecon/internal/report"
)

// templateCommands defines the "templates" command, which writes sample input
// workbooks showing the expected column layout for both sources.
func templateCommands(r *reconInstance) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "write sample GSTR-2B and ledger input templates",
		Run: func(cmd *cobra.Command, args []string) {
			if dir == "" {
				dir = r.cnf.Report.TemplateDir
			}
			if err := report.WriteTemplates(dir); err != nil {
				log.Fatalf("Error writing templates: %v", err)
			}
			log.Printf("Templates written to %s\n", dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory to write the templates into")

	return cmd
}
