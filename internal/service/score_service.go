package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sta-gradebook-api/internal/engine"
	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
	appErrors "github.com/noah-isme/sta-gradebook-api/pkg/errors"
)

type scoreRepository interface {
	List(ctx context.Context, filter models.ScoreFilter) ([]models.ScoreRecord, error)
	BulkUpsert(ctx context.Context, records []models.ScoreRecord) error
	BulkDelete(ctx context.Context, keys []models.ScoreKey) error
}

type classFinder interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

type studentLister interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
}

// ScoreEntry is one grade cell in a save request.
type ScoreEntry struct {
	StudentID  string            `json:"student_id" validate:"required"`
	SubjectKey string            `json:"subject_key" validate:"required"`
	Kind       models.ResultKind `json:"kind" validate:"required"`
	Score      float64           `json:"score"`
	Term       int               `json:"term"`
}

// SaveScoresRequest holds a batch of grade cells for one class.
type SaveScoresRequest struct {
	ClassID string       `json:"class_id" validate:"required"`
	Entries []ScoreEntry `json:"entries" validate:"required,min=1,dive"`
}

// DeleteScoresRequest identifies grade cells to clear.
type DeleteScoresRequest struct {
	ClassID string            `json:"class_id" validate:"required"`
	Keys    []models.ScoreKey `json:"keys" validate:"required,min=1"`
}

// ScoreService handles grade entry, term statistics and ranking.
type ScoreService struct {
	scores    scoreRepository
	classes   classFinder
	students  studentLister
	levelCfg  *levels.Provider
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScoreService constructs the score service.
func NewScoreService(scores scoreRepository, classes classFinder, students studentLister, levelCfg *levels.Provider, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ScoreService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoreService{scores: scores, classes: classes, students: students, levelCfg: levelCfg, cache: cache, validator: validate, logger: logger}
}

// List returns score records matching the filter.
func (s *ScoreService) List(ctx context.Context, filter models.ScoreFilter) ([]models.ScoreRecord, error) {
	scores, err := s.scores.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list scores")
	}
	return scores, nil
}

// Save validates and persists a batch of grade cells. Exam entries
// require a term of 1-3; exercises and tests are stored with term 0 so
// one cell exists per subject. Scores must stay within the configured
// subject maximum of the class level.
func (s *ScoreService) Save(ctx context.Context, req SaveScoresRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid scores payload")
	}
	class, err := s.loadClass(ctx, req.ClassID)
	if err != nil {
		return err
	}

	records := make([]models.ScoreRecord, 0, len(req.Entries))
	for _, entry := range req.Entries {
		if !entry.Kind.Valid() {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown result kind %q", entry.Kind))
		}
		term := entry.Term
		if entry.Kind == models.ResultKindExam {
			if term < 1 || term > 3 {
				return appErrors.Clone(appErrors.ErrValidation, "exam scores require a term between 1 and 3")
			}
		} else {
			term = 0
		}
		max := fallbackMax
		if configured, ok := s.levelCfg.MaxScore(class.Level, entry.SubjectKey); ok {
			max = configured
		}
		if entry.Score < 0 || entry.Score > float64(max) {
			return appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("score for %s must be between 0 and %d", entry.SubjectKey, max))
		}
		records = append(records, models.ScoreRecord{
			StudentID:  entry.StudentID,
			ClassID:    req.ClassID,
			SubjectKey: entry.SubjectKey,
			Kind:       entry.Kind,
			Score:      entry.Score,
			MaxScore:   float64(max),
			Term:       term,
		})
	}

	if err := s.scores.BulkUpsert(ctx, records); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save scores")
	}
	s.invalidateClass(ctx, req.ClassID)
	return nil
}

// Delete clears grade cells by natural key.
func (s *ScoreService) Delete(ctx context.Context, req DeleteScoresRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid delete payload")
	}
	keys := make([]models.ScoreKey, 0, len(req.Keys))
	for _, key := range req.Keys {
		if key.Kind != models.ResultKindExam {
			key.Term = 0
		}
		keys = append(keys, key)
	}
	if err := s.scores.BulkDelete(ctx, keys); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete scores")
	}
	s.invalidateClass(ctx, req.ClassID)
	return nil
}

// TermStats computes a student's official totals for one term.
func (s *ScoreService) TermStats(ctx context.Context, classID, studentID string, term int) (*models.TermStats, error) {
	if term < 1 || term > 3 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "term must be between 1 and 3")
	}
	class, err := s.loadClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	scores, err := s.scores.List(ctx, models.ScoreFilter{StudentID: studentID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load scores")
	}
	stats := engine.TermStats(scores, class.Level, term, s.levelCfg)
	return &stats, nil
}

// Ranking computes the competition ranking of a class for one term.
func (s *ScoreService) Ranking(ctx context.Context, classID string, term int) (*models.TermRanking, error) {
	if term < 1 || term > 3 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "term must be between 1 and 3")
	}
	class, err := s.loadClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	students, err := s.students.List(ctx, models.StudentFilter{ClassID: classID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	scores, err := s.scores.List(ctx, models.ScoreFilter{ClassID: classID, Kind: models.ResultKindExam, Term: term})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load scores")
	}
	ranks := engine.RankStudents(students, scores, class.Level, term, s.levelCfg)
	return &models.TermRanking{ClassID: classID, Level: class.Level, Term: term, Ranks: ranks}, nil
}

func (s *ScoreService) loadClass(ctx context.Context, classID string) (*models.Class, error) {
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	return class, nil
}

func (s *ScoreService) invalidateClass(ctx context.Context, classID string) {
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("analysis:%s:*", classID)); err != nil {
		s.logger.Warn("failed to invalidate class cache", zap.String("class_id", classID), zap.Error(err))
	}
}

// fallbackMax bounds scores of subjects missing from the level table.
const fallbackMax = 20
