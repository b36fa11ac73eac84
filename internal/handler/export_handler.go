package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sta-gradebook-api/internal/service"
	"github.com/noah-isme/sta-gradebook-api/pkg/response"
)

// ExportHandler exposes the persisted annual-report export endpoints.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Create godoc
// @Summary Queue a persisted annual report export for a class
// @Tags Exports
// @Produce json
// @Param id path string true "Class ID"
// @Success 202 {object} response.Envelope
// @Router /classes/{id}/reports/annual/export [post]
func (h *ExportHandler) Create(c *gin.Context) {
	job, err := h.exports.CreateJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job)
}

// Status godoc
// @Summary Status of a queued export
// @Tags Exports
// @Produce json
// @Param id path string true "Export ID"
// @Success 200 {object} response.Envelope
// @Router /exports/{id} [get]
func (h *ExportHandler) Status(c *gin.Context) {
	job, err := h.exports.Job(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job)
}

// Download godoc
// @Summary Download a stored export via its signed token
// @Tags Exports
// @Produce text/csv
// @Param token path string true "Signed download token"
// @Success 200 {file} binary
// @Router /export/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	result, err := h.exports.ResolveDownload(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer result.File.Close() //nolint:errcheck
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, result.SizeBytes, "text/csv", result.File, nil)
}
