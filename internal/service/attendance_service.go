package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sta-gradebook-api/internal/engine"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
	appErrors "github.com/noah-isme/sta-gradebook-api/pkg/errors"
)

type attendanceRepository interface {
	ListByClass(ctx context.Context, classID string, from, to time.Time) ([]models.AttendanceRecord, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.AttendanceRecord, error)
	SaveBatch(ctx context.Context, records []models.AttendanceRecord) error
}

// AttendanceEntry is one student's state for the day being recorded.
type AttendanceEntry struct {
	StudentID     string                  `json:"student_id" validate:"required"`
	Status        models.AttendanceStatus `json:"status" validate:"required"`
	Justification *string                 `json:"justification,omitempty"`
}

// SaveAttendanceRequest records attendance of a class for one day.
type SaveAttendanceRequest struct {
	ClassID string            `json:"class_id" validate:"required"`
	Date    time.Time         `json:"date" validate:"required"`
	Entries []AttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

// AttendanceService handles attendance recording and statistics.
type AttendanceService struct {
	repo      attendanceRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Save records one day of attendance for a class. Saving the same day
// again replaces the previous entries.
func (s *AttendanceService) Save(ctx context.Context, req SaveAttendanceRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	day := req.Date.UTC().Truncate(24 * time.Hour)
	records := make([]models.AttendanceRecord, 0, len(req.Entries))
	for _, entry := range req.Entries {
		if !entry.Status.Valid() {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown attendance status %q", entry.Status))
		}
		records = append(records, models.AttendanceRecord{
			StudentID:     entry.StudentID,
			ClassID:       req.ClassID,
			Date:          day,
			Status:        entry.Status,
			Justification: entry.Justification,
		})
	}
	if err := s.repo.SaveBatch(ctx, records); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
	}
	// Attendance feeds the analysis views, so drop the class namespace.
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("analysis:%s:*", req.ClassID)); err != nil {
		s.logger.Warn("failed to invalidate class cache", zap.String("class_id", req.ClassID), zap.Error(err))
	}
	return nil
}

// ListClass returns a class's raw attendance records for a date range.
func (s *AttendanceService) ListClass(ctx context.Context, classID string, from, to time.Time) ([]models.AttendanceRecord, error) {
	records, err := s.repo.ListByClass(ctx, classID, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}

// ClassStats aggregates a class's attendance over the requested period.
func (s *AttendanceService) ClassStats(ctx context.Context, classID string, period models.AttendancePeriod, now time.Time) (*models.AttendanceStats, error) {
	records, err := s.repo.ListByClass(ctx, classID, time.Time{}, time.Time{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	windowed := engine.FilterAttendanceByPeriod(records, period, now)
	stats := engine.AttendanceStats(windowed)
	return &stats, nil
}

// StudentStats aggregates one student's attendance over the requested period.
func (s *AttendanceService) StudentStats(ctx context.Context, studentID string, period models.AttendancePeriod, now time.Time) (*models.AttendanceStats, error) {
	records, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	windowed := engine.FilterAttendanceByPeriod(records, period, now)
	stats := engine.AttendanceStats(windowed)
	return &stats, nil
}
