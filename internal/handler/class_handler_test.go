package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
	"github.com/noah-isme/sta-gradebook-api/internal/service"
	"github.com/noah-isme/sta-gradebook-api/pkg/response"
)

type classRepoStub struct {
	classes map[string]models.Class
}

func (s *classRepoStub) List(ctx context.Context) ([]models.Class, error) {
	out := make([]models.Class, 0, len(s.classes))
	for _, c := range s.classes {
		out = append(out, c)
	}
	return out, nil
}

func (s *classRepoStub) FindByID(ctx context.Context, id string) (*models.Class, error) {
	if c, ok := s.classes[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (s *classRepoStub) Create(ctx context.Context, class *models.Class) error {
	if s.classes == nil {
		s.classes = make(map[string]models.Class)
	}
	if class.ID == "" {
		class.ID = "generated"
	}
	s.classes[class.ID] = *class
	return nil
}

func (s *classRepoStub) Update(ctx context.Context, class *models.Class) error {
	s.classes[class.ID] = *class
	return nil
}

func (s *classRepoStub) Delete(ctx context.Context, id string) error {
	delete(s.classes, id)
	return nil
}

func (s *classRepoStub) CountStudents(ctx context.Context, id string) (int, error) {
	return 0, nil
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestClassHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewClassService(&classRepoStub{}, validator.New(), zap.NewNop())
	handler := NewClassHandler(svc)

	payload, _ := json.Marshal(service.ClassRequest{Name: "AF1 A", Level: levels.AF1, AcademicYear: "2025-2026"})
	c, w := newGinContext(http.MethodPost, "/classes", payload)

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotNil(t, envelope.Data)
}

func TestClassHandlerCreateRejectsUnknownLevel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewClassService(&classRepoStub{}, validator.New(), zap.NewNop())
	handler := NewClassHandler(svc)

	payload, _ := json.Marshal(service.ClassRequest{Name: "AF9 A", Level: "AF9", AcademicYear: "2025-2026"})
	c, w := newGinContext(http.MethodPost, "/classes", payload)

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClassHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewClassService(&classRepoStub{}, validator.New(), zap.NewNop())
	handler := NewClassHandler(svc)

	c, w := newGinContext(http.MethodGet, "/classes/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
