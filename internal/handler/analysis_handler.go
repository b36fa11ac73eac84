package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sta-gradebook-api/internal/service"
	"github.com/noah-isme/sta-gradebook-api/pkg/response"
)

// AnalysisHandler exposes performance analysis endpoints.
type AnalysisHandler struct {
	analysis *service.AnalysisService
}

// NewAnalysisHandler constructs AnalysisHandler.
func NewAnalysisHandler(analysis *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis}
}

// Student godoc
// @Summary Performance profile of one student
// @Tags Analysis
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/analysis [get]
func (h *AnalysisHandler) Student(c *gin.Context) {
	analysis, err := h.analysis.Student(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, analysis)
}

// Class godoc
// @Summary Aggregated performance profile of a class
// @Tags Analysis
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/analysis [get]
func (h *AnalysisHandler) Class(c *gin.Context) {
	analysis, err := h.analysis.Class(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, analysis)
}
