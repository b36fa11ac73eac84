package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
	"github.com/noah-isme/sta-gradebook-api/internal/service"
)

type scoreRepoStub struct {
	scoreListStub
	saved   []models.ScoreRecord
	deleted []models.ScoreKey
}

func (s *scoreRepoStub) BulkUpsert(ctx context.Context, records []models.ScoreRecord) error {
	s.saved = append(s.saved, records...)
	return nil
}

func (s *scoreRepoStub) BulkDelete(ctx context.Context, keys []models.ScoreKey) error {
	s.deleted = append(s.deleted, keys...)
	return nil
}

func newScoreHandler(repo *scoreRepoStub) *ScoreHandler {
	classes := &classRepoStub{classes: map[string]models.Class{
		"class-1": {ID: "class-1", Name: "AF1 A", Level: levels.AF1},
	}}
	svc := service.NewScoreService(repo, classes, &studentListStub{}, levels.New(nil), nil, validator.New(), zap.NewNop())
	return NewScoreHandler(svc)
}

func TestScoreHandlerSave(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &scoreRepoStub{}
	handler := newScoreHandler(repo)

	payload, _ := json.Marshal(service.SaveScoresRequest{
		ClassID: "class-1",
		Entries: []service.ScoreEntry{
			{StudentID: "s1", SubjectKey: "mathematics", Kind: models.ResultKindExam, Score: 32, Term: 1},
		},
	})
	c, w := newGinContext(http.MethodPost, "/scores", payload)

	handler.Save(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, repo.saved, 1)
	require.Equal(t, 40.0, repo.saved[0].MaxScore)
}

func TestScoreHandlerSaveRejectsExamWithoutTerm(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &scoreRepoStub{}
	handler := newScoreHandler(repo)

	payload, _ := json.Marshal(service.SaveScoresRequest{
		ClassID: "class-1",
		Entries: []service.ScoreEntry{
			{StudentID: "s1", SubjectKey: "mathematics", Kind: models.ResultKindExam, Score: 32},
		},
	})
	c, w := newGinContext(http.MethodPost, "/scores", payload)

	handler.Save(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, repo.saved)
}

func TestScoreHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &scoreRepoStub{}
	handler := newScoreHandler(repo)

	payload, _ := json.Marshal(service.DeleteScoresRequest{
		ClassID: "class-1",
		Keys: []models.ScoreKey{
			{StudentID: "s1", SubjectKey: "mathematics", Kind: models.ResultKindTest, Term: 2},
		},
	})
	c, w := newGinContext(http.MethodDelete, "/scores", payload)

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, repo.deleted, 1)
	// Non-exam cells always live under term 0.
	require.Equal(t, 0, repo.deleted[0].Term)
}
