package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

type mockAttendanceRepo struct {
	byClass   []models.AttendanceRecord
	byStudent []models.AttendanceRecord
	saved     []models.AttendanceRecord
	err       error
}

func (m *mockAttendanceRepo) ListByClass(ctx context.Context, classID string, from, to time.Time) ([]models.AttendanceRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byClass, nil
}

func (m *mockAttendanceRepo) ListByStudent(ctx context.Context, studentID string) ([]models.AttendanceRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byStudent, nil
}

func (m *mockAttendanceRepo) SaveBatch(ctx context.Context, records []models.AttendanceRecord) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, records...)
	return nil
}

func TestAttendanceServiceSave(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := NewAttendanceService(repo, nil, validator.New(), zap.NewNop())

	day := time.Date(2026, time.January, 12, 9, 30, 0, 0, time.UTC)
	err := svc.Save(context.Background(), SaveAttendanceRequest{
		ClassID: "class-1",
		Date:    day,
		Entries: []AttendanceEntry{
			{StudentID: "s1", Status: models.AttendanceStatusPresent},
			{StudentID: "s2", Status: models.AttendanceStatusAbsent},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.saved, 2)
	// Timestamps are normalised to calendar days.
	assert.Equal(t, time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC), repo.saved[0].Date)
}

func TestAttendanceServiceSaveRejectsUnknownStatus(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := NewAttendanceService(repo, nil, validator.New(), zap.NewNop())

	err := svc.Save(context.Background(), SaveAttendanceRequest{
		ClassID: "class-1",
		Date:    time.Now(),
		Entries: []AttendanceEntry{{StudentID: "s1", Status: "SICK"}},
	})
	require.Error(t, err)
	assert.Empty(t, repo.saved)
}

func TestAttendanceServiceSaveRequiresEntries(t *testing.T) {
	svc := NewAttendanceService(&mockAttendanceRepo{}, nil, validator.New(), zap.NewNop())

	err := svc.Save(context.Background(), SaveAttendanceRequest{ClassID: "class-1", Date: time.Now()})
	require.Error(t, err)
}

func TestAttendanceServiceClassStats(t *testing.T) {
	now := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)
	repo := &mockAttendanceRepo{byClass: []models.AttendanceRecord{
		{StudentID: "s1", Date: now.AddDate(0, 0, -1), Status: models.AttendanceStatusPresent},
		{StudentID: "s2", Date: now.AddDate(0, 0, -1), Status: models.AttendanceStatusLate},
		{StudentID: "s1", Date: now.AddDate(0, -2, 0), Status: models.AttendanceStatusAbsent},
	}}
	svc := NewAttendanceService(repo, nil, validator.New(), zap.NewNop())

	stats, err := svc.ClassStats(context.Background(), "class-1", models.AttendancePeriodWeek, now)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Counts.Present)
	assert.Equal(t, 1, stats.Counts.Late)
	assert.Equal(t, 0, stats.Counts.Absent)
	assert.Equal(t, 50, stats.PresentRate)
}

func TestAttendanceServiceStudentStatsEmpty(t *testing.T) {
	svc := NewAttendanceService(&mockAttendanceRepo{}, nil, validator.New(), zap.NewNop())

	stats, err := svc.StudentStats(context.Background(), "s1", models.AttendancePeriodTerm, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.PresentRate)
	assert.Equal(t, 0, stats.Counts.Present)
}
