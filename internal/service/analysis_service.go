package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sta-gradebook-api/internal/engine"
	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
	"github.com/noah-isme/sta-gradebook-api/internal/repository"
	appErrors "github.com/noah-isme/sta-gradebook-api/pkg/errors"
)

type studentFinder interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
}

type attendanceReader interface {
	ListByClass(ctx context.Context, classID string, from, to time.Time) ([]models.AttendanceRecord, error)
}

type scoreReader interface {
	List(ctx context.Context, filter models.ScoreFilter) ([]models.ScoreRecord, error)
}

// AnalysisService produces rule-based student and class performance
// profiles. Derived payloads are cached per class and invalidated when
// scores change.
type AnalysisService struct {
	students   studentFinder
	classes    classFinder
	scores     scoreReader
	attendance attendanceReader
	levelCfg   *levels.Provider
	cache      *CacheService
	logger     *zap.Logger
}

// NewAnalysisService constructs the analysis service.
func NewAnalysisService(students studentFinder, classes classFinder, scores scoreReader, attendance attendanceReader, levelCfg *levels.Provider, cache *CacheService, logger *zap.Logger) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{students: students, classes: classes, scores: scores, attendance: attendance, levelCfg: levelCfg, cache: cache, logger: logger}
}

// Student builds the performance profile of one student.
func (s *AnalysisService) Student(ctx context.Context, studentID string) (*models.StudentAnalysis, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	class, err := s.classes.FindByID(ctx, student.ClassID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	key := repository.AnalysisKey(class.ID, "student:"+studentID)
	var cached models.StudentAnalysis
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	scores, err := s.scores.List(ctx, models.ScoreFilter{StudentID: studentID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load scores")
	}
	attendance, err := s.attendance.ListByClass(ctx, class.ID, time.Time{}, time.Time{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}

	analysis := engine.StudentAnalysis(studentID, scores, attendance, class.Level, s.levelCfg)
	if err := s.cache.Set(ctx, key, analysis, 0); err != nil {
		s.logger.Warn("failed to cache student analysis", zap.String("student_id", studentID), zap.Error(err))
	}
	return &analysis, nil
}

// Class builds the aggregated performance profile of a class.
func (s *AnalysisService) Class(ctx context.Context, classID string) (*models.ClassAnalysis, error) {
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	key := repository.AnalysisKey(classID, "class")
	var cached models.ClassAnalysis
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	students, err := s.students.List(ctx, models.StudentFilter{ClassID: classID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	scores, err := s.scores.List(ctx, models.ScoreFilter{ClassID: classID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load scores")
	}
	attendance, err := s.attendance.ListByClass(ctx, classID, time.Time{}, time.Time{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}

	analysis := engine.ClassAnalysis(students, scores, attendance, class.Level, s.levelCfg)
	if err := s.cache.Set(ctx, key, analysis, 0); err != nil {
		s.logger.Warn("failed to cache class analysis", zap.String("class_id", classID), zap.Error(err))
	}
	return &analysis, nil
}
