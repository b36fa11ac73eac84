package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sta-gradebook-api/internal/models"
	"github.com/noah-isme/sta-gradebook-api/internal/service"
	appErrors "github.com/noah-isme/sta-gradebook-api/pkg/errors"
	"github.com/noah-isme/sta-gradebook-api/pkg/response"
)

// ScoreHandler exposes grade entry, term statistics and ranking endpoints.
type ScoreHandler struct {
	scores *service.ScoreService
}

// NewScoreHandler constructs ScoreHandler.
func NewScoreHandler(scores *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scores: scores}
}

// List godoc
// @Summary List score records
// @Tags Scores
// @Produce json
// @Param classId query string false "Filter by class"
// @Param studentId query string false "Filter by student"
// @Param kind query string false "Filter by result kind"
// @Param term query int false "Filter by term"
// @Success 200 {object} response.Envelope
// @Router /scores [get]
func (h *ScoreHandler) List(c *gin.Context) {
	filter := models.ScoreFilter{
		ClassID:   c.Query("classId"),
		StudentID: c.Query("studentId"),
		Kind:      models.ResultKind(c.Query("kind")),
	}
	if term, err := strconv.Atoi(c.DefaultQuery("term", "0")); err == nil {
		filter.Term = term
	}
	scores, err := h.scores.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scores)
}

// Save godoc
// @Summary Save a batch of grade cells
// @Tags Scores
// @Accept json
// @Produce json
// @Param payload body service.SaveScoresRequest true "Scores payload"
// @Success 204
// @Router /scores [post]
func (h *ScoreHandler) Save(c *gin.Context) {
	var req service.SaveScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.scores.Save(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Clear grade cells
// @Tags Scores
// @Accept json
// @Produce json
// @Param payload body service.DeleteScoresRequest true "Keys payload"
// @Success 204
// @Router /scores [delete]
func (h *ScoreHandler) Delete(c *gin.Context) {
	var req service.DeleteScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.scores.Delete(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// TermStats godoc
// @Summary Term statistics of one student
// @Tags Scores
// @Produce json
// @Param id path string true "Class ID"
// @Param studentId path string true "Student ID"
// @Param term query int true "Term (1-3)"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/students/{studentId}/term-stats [get]
func (h *ScoreHandler) TermStats(c *gin.Context) {
	term, _ := strconv.Atoi(c.Query("term"))
	stats, err := h.scores.TermStats(c.Request.Context(), c.Param("id"), c.Param("studentId"), term)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// Ranking godoc
// @Summary Competition ranking of a class for a term
// @Tags Scores
// @Produce json
// @Param id path string true "Class ID"
// @Param term query int true "Term (1-3)"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/ranking [get]
func (h *ScoreHandler) Ranking(c *gin.Context) {
	term, _ := strconv.Atoi(c.Query("term"))
	ranking, err := h.scores.Ranking(c.Request.Context(), c.Param("id"), term)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ranking)
}
