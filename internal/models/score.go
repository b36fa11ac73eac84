package models

import (
	"time"

	"github.com/noah-isme/sta-gradebook-api/internal/levels"
)

// ResultKind categorises a score entry. Only exam results feed official
// averages and ranking.
type ResultKind string

const (
	ResultKindExercise ResultKind = "EXERCISE"
	ResultKindTest     ResultKind = "TEST"
	ResultKindExam     ResultKind = "EXAM"
)

// Valid reports whether the kind is a supported value.
func (k ResultKind) Valid() bool {
	switch k {
	case ResultKindExercise, ResultKindTest, ResultKindExam:
		return true
	default:
		return false
	}
}

// ScoreRecord is a single measured grade. The natural key is
// (student_id, subject_key, kind, term); term is 0 for non-exam kinds.
type ScoreRecord struct {
	ID         string     `db:"id" json:"id"`
	StudentID  string     `db:"student_id" json:"student_id"`
	ClassID    string     `db:"class_id" json:"class_id"`
	SubjectKey string     `db:"subject_key" json:"subject_key"`
	Kind       ResultKind `db:"kind" json:"kind"`
	Score      float64    `db:"score" json:"score"`
	MaxScore   float64    `db:"max_score" json:"max_score"`
	Term       int        `db:"term" json:"term,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// ScoreFilter scopes score listing queries.
type ScoreFilter struct {
	ClassID   string
	StudentID string
	Kind      ResultKind
	Term      int
}

// ScoreKey identifies a score record by its natural key, used for batch
// deletes when a teacher clears a grade cell.
type ScoreKey struct {
	StudentID  string     `json:"student_id"`
	SubjectKey string     `json:"subject_key"`
	Kind       ResultKind `json:"kind"`
	Term       int        `json:"term,omitempty"`
}

// TermStats summarises a student's official exam totals for one term.
type TermStats struct {
	Term        int     `json:"term"`
	TotalScore  float64 `json:"total_score"`
	MaxPossible int     `json:"max_possible"`
	Average     float64 `json:"average"`
}

// AnnualReportItem is one row of the official annual report.
type AnnualReportItem struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name,omitempty"`
	Term1Avg    float64 `json:"term1_avg"`
	Term2Avg    float64 `json:"term2_avg"`
	Term3Avg    float64 `json:"term3_avg"`
	AnnualAvg   float64 `json:"annual_avg"`
	Rank        int     `json:"rank"`
	Decision    string  `json:"decision"`
}

// Decision labels for the annual report. Promotion requires an annual
// average of at least 10/20.
const (
	DecisionPromote = "promote"
	DecisionRepeat  = "repeat"
)

// TermRanking maps student IDs to their competition rank for a term.
type TermRanking struct {
	ClassID string         `json:"class_id"`
	Level   levels.Level   `json:"level"`
	Term    int            `json:"term"`
	Ranks   map[string]int `json:"ranks"`
}
