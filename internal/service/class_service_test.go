package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

func TestClassServiceCreate(t *testing.T) {
	repo := &mockClassRepo{}
	svc := NewClassService(repo, validator.New(), zap.NewNop())

	class, err := svc.Create(context.Background(), ClassRequest{
		Name:         "AF3 B",
		Level:        levels.AF3,
		AcademicYear: "2025-2026",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, class.ID)
	assert.Equal(t, levels.AF3, class.Level)
}

func TestClassServiceCreateRejectsUnknownLevel(t *testing.T) {
	svc := NewClassService(&mockClassRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), ClassRequest{
		Name:         "AF9 A",
		Level:        "AF9",
		AcademicYear: "2025-2026",
	})
	require.Error(t, err)
}

func TestClassServiceDeleteRefusesNonEmpty(t *testing.T) {
	repo := &mockClassRepo{
		classes:  map[string]models.Class{"class-1": {ID: "class-1", Level: levels.AF1}},
		students: 3,
	}
	svc := NewClassService(repo, validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), "class-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "students")
}

func TestClassServiceDeleteEmptyClass(t *testing.T) {
	repo := &mockClassRepo{
		classes: map[string]models.Class{"class-1": {ID: "class-1", Level: levels.AF1}},
	}
	svc := NewClassService(repo, validator.New(), zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), "class-1"))
	assert.Empty(t, repo.classes)
}
