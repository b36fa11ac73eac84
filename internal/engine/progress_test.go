package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

func weeklyTopics(subject string, weeks ...int) []models.CurriculumTopic {
	topics := make([]models.CurriculumTopic, 0, len(weeks))
	for _, week := range weeks {
		topics = append(topics, models.CurriculumTopic{
			ID:         fmt.Sprintf("topic-w%d", week),
			Level:      levels.AF3,
			SubjectKey: subject,
			Term:       TermForWeek(week),
			Week:       week,
		})
	}
	return topics
}

func TestCalendarCurrentWeek(t *testing.T) {
	cal := Calendar{Start: time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), TotalWeeks: 30}

	tests := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2025, time.September, 20, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, time.October, 5, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, time.October, 9, 0, 0, 0, 0, time.UTC), 2},
		{time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), 9},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, cal.CurrentWeek(tc.now), "now=%s", tc.now)
	}
}

func TestTermForWeek(t *testing.T) {
	assert.Equal(t, 1, TermForWeek(1))
	assert.Equal(t, 1, TermForWeek(11))
	assert.Equal(t, 2, TermForWeek(12))
	assert.Equal(t, 2, TermForWeek(22))
	assert.Equal(t, 3, TermForWeek(23))
	assert.Equal(t, 3, TermForWeek(30))
}

func TestSubjectProgressDelayed(t *testing.T) {
	topics := weeklyTopics("mathematics", 1, 2, 3, 4, 5)

	status := SubjectProgress(topics, []string{"topic-w1", "topic-w2"}, 6)

	assert.True(t, status.IsDelayed)
	assert.Equal(t, 3, status.DelayWeeks)
	assert.Equal(t, 2, status.LastCompletedWeek)
	assert.Equal(t, 2, status.CompletedCount)
	assert.Equal(t, 5, status.TotalTopics)
	assert.Equal(t, 40, status.Percentage)
}

func TestSubjectProgressOutOfOrderNotDelayed(t *testing.T) {
	topics := weeklyTopics("mathematics", 1, 2, 3)

	// All expected topics handled; a recent completion clears the delay
	// even though week 1 was never marked.
	status := SubjectProgress(topics, []string{"topic-w2", "topic-w3"}, 3)

	assert.False(t, status.IsDelayed)
	assert.Equal(t, 0, status.DelayWeeks)
}

func TestSubjectProgressUpToDate(t *testing.T) {
	topics := weeklyTopics("arabic_language", 1, 2, 3)

	status := SubjectProgress(topics, []string{"topic-w1", "topic-w2"}, 3)

	assert.False(t, status.IsDelayed)
	assert.Equal(t, 0, status.DelayWeeks)
	assert.Equal(t, 67, status.Percentage)
}

func TestSubjectProgressNoTopics(t *testing.T) {
	status := SubjectProgress(nil, nil, 4)

	assert.False(t, status.IsDelayed)
	assert.Equal(t, 0, status.Percentage)
	assert.Equal(t, 0, status.TotalTopics)
}

func TestStudentSubjectStatsSkippedCountsAsHandled(t *testing.T) {
	topics := weeklyTopics("mathematics", 1, 2, 3, 4)

	progress := []models.StudentProgress{
		{StudentID: "s1", TopicID: "topic-w1", Status: models.ProgressStatusCompleted},
		{StudentID: "s1", TopicID: "topic-w2", Status: models.ProgressStatusSkipped},
		{StudentID: "s1", TopicID: "unrelated", Status: models.ProgressStatusCompleted},
	}

	stats := StudentSubjectStats(topics, progress)

	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 50, stats.Percentage)
}

func TestStudentSubjectStatsNoTopics(t *testing.T) {
	stats := StudentSubjectStats(nil, nil)

	assert.Equal(t, 0, stats.Percentage)
}
