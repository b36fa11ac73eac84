package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sta-gradebook-api/internal/models"
	"github.com/noah-isme/sta-gradebook-api/internal/service"
	appErrors "github.com/noah-isme/sta-gradebook-api/pkg/errors"
	"github.com/noah-isme/sta-gradebook-api/pkg/response"
)

// AttendanceHandler exposes attendance endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Save godoc
// @Summary Record one day of class attendance
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.SaveAttendanceRequest true "Attendance payload"
// @Success 204
// @Router /attendance [post]
func (h *AttendanceHandler) Save(c *gin.Context) {
	var req service.SaveAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.attendance.Save(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListClass godoc
// @Summary List class attendance records
// @Tags Attendance
// @Produce json
// @Param id path string true "Class ID"
// @Param from query string false "Start date (RFC 3339)"
// @Param to query string false "End date (RFC 3339)"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/attendance [get]
func (h *AttendanceHandler) ListClass(c *gin.Context) {
	from := parseDateQuery(c.Query("from"))
	to := parseDateQuery(c.Query("to"))
	records, err := h.attendance.ListClass(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// ClassStats godoc
// @Summary Attendance statistics of a class
// @Tags Attendance
// @Produce json
// @Param id path string true "Class ID"
// @Param period query string false "week, month or term"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/attendance/stats [get]
func (h *AttendanceHandler) ClassStats(c *gin.Context) {
	period := models.AttendancePeriod(c.DefaultQuery("period", string(models.AttendancePeriodTerm)))
	stats, err := h.attendance.ClassStats(c.Request.Context(), c.Param("id"), period, time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// StudentStats godoc
// @Summary Attendance statistics of a student
// @Tags Attendance
// @Produce json
// @Param id path string true "Student ID"
// @Param period query string false "week, month or term"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/attendance/stats [get]
func (h *AttendanceHandler) StudentStats(c *gin.Context) {
	period := models.AttendancePeriod(c.DefaultQuery("period", string(models.AttendancePeriodTerm)))
	stats, err := h.attendance.StudentStats(c.Request.Context(), c.Param("id"), period, time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

func parseDateQuery(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Time{}
}
