package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

func attendanceOn(studentID string, date time.Time, status models.AttendanceStatus) models.AttendanceRecord {
	return models.AttendanceRecord{
		StudentID: studentID,
		ClassID:   "class-1",
		Date:      date,
		Status:    status,
	}
}

func TestAttendanceStatsEmptyInput(t *testing.T) {
	stats := AttendanceStats(nil)

	assert.Equal(t, models.AttendanceStats{}, stats)
}

func TestAttendanceStatsRates(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	records := []models.AttendanceRecord{
		attendanceOn("s1", day, models.AttendanceStatusPresent),
		attendanceOn("s1", day.AddDate(0, 0, 1), models.AttendanceStatusPresent),
		attendanceOn("s1", day.AddDate(0, 0, 2), models.AttendanceStatusAbsent),
		attendanceOn("s1", day.AddDate(0, 0, 3), models.AttendanceStatusLate),
	}

	stats := AttendanceStats(records)

	assert.Equal(t, 2, stats.Counts.Present)
	assert.Equal(t, 1, stats.Counts.Absent)
	assert.Equal(t, 1, stats.Counts.Late)
	assert.Equal(t, 50, stats.PresentRate)
	assert.Equal(t, 25, stats.AbsentRate)
	assert.Equal(t, 25, stats.LateRate)
}

func TestAttendanceStatsRoundsWholePercent(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	records := []models.AttendanceRecord{
		attendanceOn("s1", day, models.AttendanceStatusPresent),
		attendanceOn("s1", day.AddDate(0, 0, 1), models.AttendanceStatusPresent),
		attendanceOn("s1", day.AddDate(0, 0, 2), models.AttendanceStatusAbsent),
	}

	stats := AttendanceStats(records)

	// 2/3 rounds to 67, 1/3 to 33.
	assert.Equal(t, 67, stats.PresentRate)
	assert.Equal(t, 33, stats.AbsentRate)
}

func TestFilterAttendanceByPeriod(t *testing.T) {
	now := time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)
	records := []models.AttendanceRecord{
		attendanceOn("s1", now.AddDate(0, 0, -2), models.AttendanceStatusPresent),
		attendanceOn("s1", now.AddDate(0, 0, -10), models.AttendanceStatusPresent),
		attendanceOn("s1", time.Date(2026, time.February, 25, 0, 0, 0, 0, time.UTC), models.AttendanceStatusAbsent),
	}

	week := FilterAttendanceByPeriod(records, models.AttendancePeriodWeek, now)
	assert.Len(t, week, 1)

	month := FilterAttendanceByPeriod(records, models.AttendancePeriodMonth, now)
	assert.Len(t, month, 2)

	term := FilterAttendanceByPeriod(records, models.AttendancePeriodTerm, now)
	assert.Len(t, term, 3)
}
