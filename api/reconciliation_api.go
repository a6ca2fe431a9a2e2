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
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gstkit/gstrecon"
	model2 "github.com/gstkit/gstrecon/api/model"
	"github.com/gstkit/gstrecon/config"
	"github.com/gstkit/gstrecon/internal/apierror"
	"github.com/gstkit/gstrecon/internal/report"
	"github.com/gstkit/gstrecon/internal/tabular"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RunReconciliation accepts the two invoice files as multipart uploads
// ("gstr2b" and "ledger"), runs the full reconciliation and streams back the
// report workbook. With dry_run=true it returns the run summary as JSON.
func (a Api) RunReconciliation(c *gin.Context) {
	var options model2.ReconcileOptions
	if err := c.ShouldBindQuery(&options); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if options.Output == "" {
		options.Output = config.DEFAULT_REPORT_OUT
	}
	if err := options.ValidateReconcileOptions(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gstrFile, gstrHeader, err := c.Request.FormFile("gstr2b")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gstr2b file upload failed"})
		return
	}
	defer gstrFile.Close()

	ledgerFile, ledgerHeader, err := c.Request.FormFile("ledger")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ledger file upload failed"})
		return
	}
	defer ledgerFile.Close()

	partition, err := a.service.Run(c.Request.Context(), gstrFile, gstrHeader.Filename, ledgerFile, ledgerHeader.Filename)
	if err != nil {
		apiErr := mapRunError(err)
		c.JSON(apierror.MapErrorToHTTPStatus(apiErr), gin.H{"error": apiErr.Message})
		return
	}

	if options.DryRun {
		c.JSON(http.StatusOK, partition.Summary)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+options.Output)
	c.Header("Content-Type", xlsxContentType)
	if err := report.Write(partition, c.Writer); err != nil {
		logrus.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write report workbook"})
		return
	}
}

// DownloadTemplate streams one of the sample input templates.
func (a Api) DownloadTemplate(c *gin.Context) {
	req := model2.TemplateRequest{Name: c.Param("name")}
	if err := req.ValidateTemplateRequest(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := report.BuildTemplate()
	if err != nil {
		logrus.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build template"})
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", "attachment; filename="+report.TemplateNames[req.Name])
	c.Header("Content-Type", xlsxContentType)
	if err := f.Write(c.Writer); err != nil {
		logrus.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write template"})
	}
}

// mapRunError classifies a reconciliation failure: precondition failures are
// the caller's problem, everything else is ours.
func mapRunError(err error) apierror.APIError {
	var missing *gstrecon.MissingColumnError
	if errors.As(err, &missing) {
		return apierror.NewAPIError(apierror.ErrMissingColumn, missing.Error(), nil)
	}
	var unsupported *tabular.UnsupportedFileError
	if errors.As(err, &unsupported) {
		return apierror.NewAPIError(apierror.ErrUnsupportedFile, unsupported.Error(), nil)
	}
	return apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), err)
}
