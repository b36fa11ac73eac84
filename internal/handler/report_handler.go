package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sta-gradebook-api/internal/service"
	"github.com/noah-isme/sta-gradebook-api/pkg/response"
)

// ReportHandler exposes annual report endpoints.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Annual godoc
// @Summary Ranked annual report of a class
// @Tags Reports
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/reports/annual [get]
func (h *ReportHandler) Annual(c *gin.Context) {
	report, err := h.reports.Annual(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// AnnualCSV godoc
// @Summary Annual report of a class as CSV
// @Tags Reports
// @Produce text/csv
// @Param id path string true "Class ID"
// @Success 200 {string} string "CSV payload"
// @Router /classes/{id}/reports/annual.csv [get]
func (h *ReportHandler) AnnualCSV(c *gin.Context) {
	classID := c.Param("id")
	payload, err := h.reports.AnnualCSV(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=annual-report-%s.csv", classID))
	c.Data(http.StatusOK, "text/csv", payload)
}
