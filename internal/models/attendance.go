package models

import "time"

// AttendanceStatus represents the daily attendance state of a student.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "PRESENT"
	AttendanceStatusAbsent  AttendanceStatus = "ABSENT"
	AttendanceStatusLate    AttendanceStatus = "LATE"
)

// Valid reports whether the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate:
		return true
	default:
		return false
	}
}

// AttendanceRecord is one student's attendance entry for one calendar
// day. The natural key is (student_id, date); saving overwrites.
type AttendanceRecord struct {
	ID            string           `db:"id" json:"id"`
	StudentID     string           `db:"student_id" json:"student_id"`
	ClassID       string           `db:"class_id" json:"class_id"`
	Date          time.Time        `db:"date" json:"date"`
	Status        AttendanceStatus `db:"status" json:"status"`
	Justification *string          `db:"justification" json:"justification,omitempty"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
}

// AttendancePeriod selects the time window for attendance statistics.
type AttendancePeriod string

const (
	AttendancePeriodWeek  AttendancePeriod = "week"
	AttendancePeriodMonth AttendancePeriod = "month"
	AttendancePeriodTerm  AttendancePeriod = "term"
)

// AttendanceCounts holds raw per-status counts.
type AttendanceCounts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
}

// AttendanceStats summarises counts and percentage rates over a set of
// records. All rates are zero when no records exist.
type AttendanceStats struct {
	Counts      AttendanceCounts `json:"counts"`
	PresentRate int              `json:"present_rate"`
	AbsentRate  int              `json:"absent_rate"`
	LateRate    int              `json:"late_rate"`
}
