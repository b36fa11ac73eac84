package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
	"github.com/noah-isme/sta-gradebook-api/internal/service"
	"github.com/noah-isme/sta-gradebook-api/pkg/export"
	"github.com/noah-isme/sta-gradebook-api/pkg/response"
)

type studentListStub struct {
	students []models.Student
}

func (s *studentListStub) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	return s.students, nil
}

type scoreListStub struct {
	scores []models.ScoreRecord
}

func (s *scoreListStub) List(ctx context.Context, filter models.ScoreFilter) ([]models.ScoreRecord, error) {
	return s.scores, nil
}

func reportFixture() (*studentListStub, *classRepoStub, *scoreListStub) {
	students := &studentListStub{students: []models.Student{
		{ID: "s1", FullName: "Ahmed Vall", ClassID: "class-1"},
	}}
	classes := &classRepoStub{classes: map[string]models.Class{
		"class-1": {ID: "class-1", Name: "AF1 A", Level: levels.AF1},
	}}
	scores := &scoreListStub{scores: []models.ScoreRecord{
		{StudentID: "s1", ClassID: "class-1", SubjectKey: "mathematics", Kind: models.ResultKindExam, Score: 40, MaxScore: 40, Term: 1},
	}}
	return students, classes, scores
}

func TestReportHandlerAnnual(t *testing.T) {
	gin.SetMode(gin.TestMode)
	students, classes, scores := reportFixture()
	svc := service.NewReportService(students, classes, scores, levels.New(nil), export.NewCSVExporter(), nil, zap.NewNop())
	handler := NewReportHandler(svc)

	c, w := newGinContext(http.MethodGet, "/classes/class-1/reports/annual", nil)
	c.Params = gin.Params{{Key: "id", Value: "class-1"}}

	handler.Annual(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	items, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
}

func TestReportHandlerAnnualUnknownClass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	students, classes, scores := reportFixture()
	svc := service.NewReportService(students, classes, scores, levels.New(nil), export.NewCSVExporter(), nil, zap.NewNop())
	handler := NewReportHandler(svc)

	c, w := newGinContext(http.MethodGet, "/classes/missing/reports/annual", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Annual(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportHandlerAnnualCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	students, classes, scores := reportFixture()
	svc := service.NewReportService(students, classes, scores, levels.New(nil), export.NewCSVExporter(), nil, zap.NewNop())
	handler := NewReportHandler(svc)

	c, w := newGinContext(http.MethodGet, "/classes/class-1/reports/annual.csv", nil)
	c.Params = gin.Params{{Key: "id", Value: "class-1"}}

	handler.AnnualCSV(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	body := strings.TrimPrefix(w.Body.String(), "\uFEFF")
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "rank,student,term1,term2,term3,annual,decision", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "Ahmed Vall")
}
