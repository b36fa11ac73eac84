package engine

import (
	"math"
	"time"

	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

// AttendanceStats counts per-status records and derives whole-percentage
// rates. An empty input yields all zeros rather than a division error.
func AttendanceStats(records []models.AttendanceRecord) models.AttendanceStats {
	total := len(records)
	if total == 0 {
		return models.AttendanceStats{}
	}

	var counts models.AttendanceCounts
	for _, record := range records {
		switch record.Status {
		case models.AttendanceStatusPresent:
			counts.Present++
		case models.AttendanceStatusAbsent:
			counts.Absent++
		case models.AttendanceStatusLate:
			counts.Late++
		}
	}

	return models.AttendanceStats{
		Counts:      counts,
		PresentRate: roundRate(float64(counts.Present) / float64(total)),
		AbsentRate:  roundRate(float64(counts.Absent) / float64(total)),
		LateRate:    roundRate(float64(counts.Late) / float64(total)),
	}
}

// FilterAttendanceByPeriod restricts records to the requested window
// around now. "week" keeps records within 7 days in either direction,
// "month" keeps the current calendar month; anything else keeps all
// records, the caller is expected to have scoped the term already.
func FilterAttendanceByPeriod(records []models.AttendanceRecord, period models.AttendancePeriod, now time.Time) []models.AttendanceRecord {
	filtered := make([]models.AttendanceRecord, 0, len(records))
	for _, record := range records {
		switch period {
		case models.AttendancePeriodWeek:
			if daysBetween(now, record.Date) <= 7 {
				filtered = append(filtered, record)
			}
		case models.AttendancePeriodMonth:
			if record.Date.Month() == now.Month() && record.Date.Year() == now.Year() {
				filtered = append(filtered, record)
			}
		default:
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// daysBetween returns the absolute distance between two instants in
// days, rounded up.
func daysBetween(a, b time.Time) int {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}
