package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

func examScore(studentID, subject string, score float64, term int) models.ScoreRecord {
	return models.ScoreRecord{
		StudentID:  studentID,
		ClassID:    "class-1",
		SubjectKey: subject,
		Kind:       models.ResultKindExam,
		Score:      score,
		MaxScore:   20,
		Term:       term,
	}
}

func TestExtractTermGrades(t *testing.T) {
	scores := []models.ScoreRecord{
		examScore("s1", "mathematics", 30, 1),
		examScore("s1", "arabic_language", 45, 1),
		examScore("s1", "mathematics", 25, 2),
		{StudentID: "s1", SubjectKey: "mathematics", Kind: models.ResultKindTest, Score: 12, Term: 1},
	}

	grades := ExtractTermGrades(scores, 1)

	assert.Equal(t, map[string]float64{
		"mathematics":     30,
		"arabic_language": 45,
	}, grades)
}

func TestTermStatsClampsToSubjectMax(t *testing.T) {
	cfg := levels.New(nil)

	// AF1 mathematics max is 40; 55 must count as 40.
	scores := []models.ScoreRecord{
		examScore("s1", "mathematics", 55, 1),
	}

	stats := TermStats(scores, levels.AF1, 1, cfg)

	assert.Equal(t, 40.0, stats.TotalScore)
	assert.Equal(t, 200, stats.MaxPossible)
	assert.Equal(t, 4.0, stats.Average)
}

func TestTermStatsMaxEverywhereIsTwenty(t *testing.T) {
	cfg := levels.New(nil)

	for _, level := range levels.All() {
		scores := make([]models.ScoreRecord, 0)
		for subject, max := range cfg.Subjects(level) {
			scores = append(scores, examScore("s1", subject, float64(max), 1))
		}

		stats := TermStats(scores, level, 1, cfg)

		assert.Equal(t, 20.0, stats.Average, "level %s", level)
		assert.Equal(t, float64(cfg.MaxTotal(level)), stats.TotalScore, "level %s", level)
	}
}

func TestTermStatsUnknownSubjectFallsBackToTwenty(t *testing.T) {
	cfg := levels.New(nil)

	scores := []models.ScoreRecord{
		examScore("s1", "astronomy", 35, 1),
	}

	stats := TermStats(scores, levels.AF1, 1, cfg)

	assert.Equal(t, 20.0, stats.TotalScore)
}

func TestTermStatsIgnoresOtherKindsAndTerms(t *testing.T) {
	cfg := levels.New(nil)

	scores := []models.ScoreRecord{
		examScore("s1", "mathematics", 30, 2),
		{StudentID: "s1", SubjectKey: "mathematics", Kind: models.ResultKindExercise, Score: 40, Term: 1},
	}

	stats := TermStats(scores, levels.AF1, 1, cfg)

	assert.Equal(t, 0.0, stats.TotalScore)
	assert.Equal(t, 0.0, stats.Average)
}

func TestTermStatsEmptyInput(t *testing.T) {
	cfg := levels.New(nil)

	stats := TermStats(nil, levels.AF3, 1, cfg)

	assert.Equal(t, 0.0, stats.TotalScore)
	assert.Equal(t, 0.0, stats.Average)
	assert.Equal(t, 200, stats.MaxPossible)
}
