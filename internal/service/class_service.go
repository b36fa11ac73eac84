package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
	appErrors "github.com/noah-isme/sta-gradebook-api/pkg/errors"
)

type classRepository interface {
	List(ctx context.Context) ([]models.Class, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id string) error
	CountStudents(ctx context.Context, id string) (int, error)
}

// ClassRequest holds payload for creating or updating classes.
type ClassRequest struct {
	Name         string       `json:"name" validate:"required"`
	Level        levels.Level `json:"level" validate:"required"`
	AcademicYear string       `json:"academic_year" validate:"required"`
}

// ClassService handles classroom management.
type ClassService struct {
	repo      classRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs the class service.
func NewClassService(repo classRepository, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, validator: validate, logger: logger}
}

// List returns all classes.
func (s *ClassService) List(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// Get returns one class.
func (s *ClassService) Get(ctx context.Context, id string) (*models.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	return class, nil
}

// Create registers a new class at a known level.
func (s *ClassService) Create(ctx context.Context, req ClassRequest) (*models.Class, error) {
	if err := s.validateClass(req); err != nil {
		return nil, err
	}
	class := &models.Class{
		Name:         req.Name,
		Level:        req.Level,
		AcademicYear: req.AcademicYear,
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}
	return class, nil
}

// Update modifies an existing class.
func (s *ClassService) Update(ctx context.Context, id string, req ClassRequest) (*models.Class, error) {
	if err := s.validateClass(req); err != nil {
		return nil, err
	}
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	class.Name = req.Name
	class.Level = req.Level
	class.AcademicYear = req.AcademicYear
	if err := s.repo.Update(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class")
	}
	return class, nil
}

// Delete removes a class. A class that still has students is refused so
// the register never orphans rows.
func (s *ClassService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	count, err := s.repo.CountStudents(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("class still has %d students", count))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class")
	}
	return nil
}

func (s *ClassService) validateClass(req ClassRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	if !req.Level.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown level %q", req.Level))
	}
	return nil
}
