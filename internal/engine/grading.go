// Package engine implements the grading, ranking, curriculum-progress and
// student-analysis calculation rules. Every function is pure: it takes
// fully loaded collections plus the level configuration and returns derived
// values, performing no I/O. Results are deterministic for identical input.
package engine

import (
	"math"

	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

// fallbackSubjectMax caps scores of subjects missing from the level table
// so corrupt rows cannot blow up a term total.
const fallbackSubjectMax = 20

// round2 rounds to two decimals. Only final outputs are rounded;
// intermediate sums keep full precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// roundRate converts a fraction to a whole percentage.
func roundRate(fraction float64) int {
	return int(math.Round(fraction * 100))
}

// ExtractTermGrades returns the subject→score map of a student's exam
// results for one term. Non-exam kinds and other terms are ignored.
func ExtractTermGrades(scores []models.ScoreRecord, term int) map[string]float64 {
	grades := make(map[string]float64)
	for _, record := range scores {
		if record.Kind != models.ResultKindExam || record.Term != term {
			continue
		}
		grades[record.SubjectKey] = record.Score
	}
	return grades
}

// TermStats computes the official term totals for a set of score records
// (pre-filtered to one student). Scores above the configured subject max
// are clamped, the total is normalised to a /20 average against the
// level's maximum possible total.
func TermStats(scores []models.ScoreRecord, level levels.Level, term int, cfg *levels.Provider) models.TermStats {
	subjects := cfg.Subjects(level)

	total := 0.0
	for _, record := range scores {
		if record.Kind != models.ResultKindExam || record.Term != term {
			continue
		}
		maxForSubject := fallbackSubjectMax
		if max, ok := subjects[record.SubjectKey]; ok {
			maxForSubject = max
		}
		total += math.Min(record.Score, float64(maxForSubject))
	}

	maxPossible := cfg.MaxTotal(level)

	average := 0.0
	if maxPossible > 0 {
		average = total / float64(maxPossible) * 20
	}

	return models.TermStats{
		Term:        term,
		TotalScore:  round2(total),
		MaxPossible: maxPossible,
		Average:     round2(average),
	}
}

// scoresByStudent groups records by owning student.
func scoresByStudent(scores []models.ScoreRecord) map[string][]models.ScoreRecord {
	grouped := make(map[string][]models.ScoreRecord)
	for _, record := range scores {
		grouped[record.StudentID] = append(grouped[record.StudentID], record)
	}
	return grouped
}
