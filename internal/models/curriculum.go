package models

import (
	"time"

	"github.com/noah-isme/sta-gradebook-api/internal/levels"
)

// CurriculumTopic is one entry of the week-indexed annual plan for a
// level+subject track.
type CurriculumTopic struct {
	ID         string       `db:"id" json:"id"`
	Level      levels.Level `db:"level" json:"level"`
	SubjectKey string       `db:"subject_key" json:"subject_key"`
	Term       int          `db:"term" json:"term"`
	Week       int          `db:"week" json:"week"`
	Topic      string       `db:"topic" json:"topic"`
	Competency *string      `db:"competency" json:"competency,omitempty"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
}

// ClassProgress marks a topic as completed for an entire class. The
// natural key is (class_id, topic_id); row presence means completed.
type ClassProgress struct {
	ID          string    `db:"id" json:"id"`
	ClassID     string    `db:"class_id" json:"class_id"`
	TopicID     string    `db:"topic_id" json:"topic_id"`
	CompletedAt time.Time `db:"completed_at" json:"completed_at"`
}

// ProgressStatus is the per-student handling state of a topic.
type ProgressStatus string

const (
	ProgressStatusCompleted ProgressStatus = "COMPLETED"
	ProgressStatusSkipped   ProgressStatus = "SKIPPED"
)

// Valid reports whether the status is a supported value.
func (s ProgressStatus) Valid() bool {
	return s == ProgressStatusCompleted || s == ProgressStatusSkipped
}

// StudentProgress marks a topic's status for one student. The natural
// key is (student_id, topic_id); absence means untouched.
type StudentProgress struct {
	ID        string         `db:"id" json:"id"`
	StudentID string         `db:"student_id" json:"student_id"`
	TopicID   string         `db:"topic_id" json:"topic_id"`
	Status    ProgressStatus `db:"status" json:"status"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// SubjectProgressStatus is the class-level completion report for one
// subject track against the academic calendar.
type SubjectProgressStatus struct {
	SubjectKey        string `json:"subject_key"`
	Percentage        int    `json:"percentage"`
	CompletedCount    int    `json:"completed_count"`
	TotalTopics       int    `json:"total_topics"`
	CurrentWeek       int    `json:"current_week"`
	LastCompletedWeek int    `json:"last_completed_week"`
	IsDelayed         bool   `json:"is_delayed"`
	DelayWeeks        int    `json:"delay_weeks"`
}

// StudentSubjectStats is the per-student completion report for one
// subject track. Skipped topics count as handled.
type StudentSubjectStats struct {
	SubjectKey string `json:"subject_key"`
	Completed  int    `json:"completed"`
	Skipped    int    `json:"skipped"`
	Percentage int    `json:"percentage"`
}
