package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/service"
	appErrors "github.com/noah-isme/sta-gradebook-api/pkg/errors"
	"github.com/noah-isme/sta-gradebook-api/pkg/response"
)

// CurriculumHandler exposes the annual plan and progress endpoints.
type CurriculumHandler struct {
	curriculum *service.CurriculumService
}

// NewCurriculumHandler constructs CurriculumHandler.
func NewCurriculumHandler(curriculum *service.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{curriculum: curriculum}
}

// ListTopics godoc
// @Summary List curriculum topics of a level
// @Tags Curriculum
// @Produce json
// @Param level query string true "Level (AF1-AF6)"
// @Param subject query string false "Filter by subject key"
// @Success 200 {object} response.Envelope
// @Router /curriculum/topics [get]
func (h *CurriculumHandler) ListTopics(c *gin.Context) {
	topics, err := h.curriculum.ListTopics(c.Request.Context(), levels.Level(c.Query("level")), c.Query("subject"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, topics)
}

// CreateTopic godoc
// @Summary Add a topic to a level's plan
// @Tags Curriculum
// @Accept json
// @Produce json
// @Param payload body service.TopicRequest true "Topic payload"
// @Success 201 {object} response.Envelope
// @Router /curriculum/topics [post]
func (h *CurriculumHandler) CreateTopic(c *gin.Context) {
	var req service.TopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	topic, err := h.curriculum.CreateTopic(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, topic)
}

// UpdateTopic godoc
// @Summary Update a topic
// @Tags Curriculum
// @Accept json
// @Produce json
// @Param id path string true "Topic ID"
// @Param payload body service.TopicRequest true "Topic payload"
// @Success 200 {object} response.Envelope
// @Router /curriculum/topics/{id} [put]
func (h *CurriculumHandler) UpdateTopic(c *gin.Context) {
	var req service.TopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	topic, err := h.curriculum.UpdateTopic(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, topic)
}

// DeleteTopic godoc
// @Summary Delete a topic and its progress rows
// @Tags Curriculum
// @Produce json
// @Param id path string true "Topic ID"
// @Success 204
// @Router /curriculum/topics/{id} [delete]
func (h *CurriculumHandler) DeleteTopic(c *gin.Context) {
	if err := h.curriculum.DeleteTopic(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// LoadTemplate godoc
// @Summary Replace a level's plan with a template
// @Description Without a body the plan is seeded with placeholder topics for every configured subject and week.
// @Tags Curriculum
// @Accept json
// @Produce json
// @Param level path string true "Level (AF1-AF6)"
// @Param payload body []service.TemplateTopic false "Template topics"
// @Success 204
// @Router /curriculum/levels/{level}/template [post]
func (h *CurriculumHandler) LoadTemplate(c *gin.Context) {
	var entries []service.TemplateTopic
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&entries); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
	}
	if err := h.curriculum.LoadTemplate(c.Request.Context(), levels.Level(c.Param("level")), entries); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

type classProgressRequest struct {
	Completed bool `json:"completed"`
}

// SetClassProgress godoc
// @Summary Mark or unmark a topic completed for a class
// @Tags Curriculum
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param topicId path string true "Topic ID"
// @Param payload body classProgressRequest true "Completion flag"
// @Success 204
// @Router /classes/{id}/progress/{topicId} [put]
func (h *CurriculumHandler) SetClassProgress(c *gin.Context) {
	var req classProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.curriculum.SetClassProgress(c.Request.Context(), c.Param("id"), c.Param("topicId"), req.Completed); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ClassProgress godoc
// @Summary Per-subject completion of a class against the calendar
// @Tags Curriculum
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/progress [get]
func (h *CurriculumHandler) ClassProgress(c *gin.Context) {
	statuses, err := h.curriculum.ClassProgress(c.Request.Context(), c.Param("id"), time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, statuses)
}

// SetStudentProgress godoc
// @Summary Record a student's handling of a topic
// @Tags Curriculum
// @Accept json
// @Produce json
// @Param payload body service.StudentProgressRequest true "Progress payload"
// @Success 204
// @Router /students/progress [post]
func (h *CurriculumHandler) SetStudentProgress(c *gin.Context) {
	var req service.StudentProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.curriculum.SetStudentProgress(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ClearStudentProgress godoc
// @Summary Return a topic to the untouched state for a student
// @Tags Curriculum
// @Produce json
// @Param id path string true "Student ID"
// @Param topicId path string true "Topic ID"
// @Success 204
// @Router /students/{id}/progress/{topicId} [delete]
func (h *CurriculumHandler) ClearStudentProgress(c *gin.Context) {
	if err := h.curriculum.ClearStudentProgress(c.Request.Context(), c.Param("id"), c.Param("topicId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// StudentProgress godoc
// @Summary Per-subject handling of the level plan by one student
// @Tags Curriculum
// @Produce json
// @Param id path string true "Student ID"
// @Param level query string true "Level (AF1-AF6)"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/progress [get]
func (h *CurriculumHandler) StudentProgress(c *gin.Context) {
	stats, err := h.curriculum.StudentProgress(c.Request.Context(), c.Param("id"), levels.Level(c.Query("level")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}
