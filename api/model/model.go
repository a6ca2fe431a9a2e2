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
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var xlsxName = regexp.MustCompile(`^[\w.\- ]+\.xlsx$`)

// ReconcileOptions are the non-file fields of a reconciliation request.
type ReconcileOptions struct {
	// DryRun returns the run summary as JSON instead of the workbook.
	DryRun bool `form:"dry_run" json:"dry_run"`
	// Output names the downloaded workbook. Defaults to
	// reconciliation_output.xlsx.
	Output string `form:"output" json:"output"`
}

func (o *ReconcileOptions) ValidateReconcileOptions() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.Output,
			validation.Match(xlsxName).Error("output must be a plain .xlsx filename"),
		),
	)
}

// TemplateRequest identifies a downloadable sample template.
type TemplateRequest struct {
	Name string `uri:"name"`
}

func (t *TemplateRequest) ValidateTemplateRequest() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.Name,
			validation.Required,
			validation.In("gstr2b", "tally"),
		),
	)
}
