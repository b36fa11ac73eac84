package engine

import (
	"math"
	"time"

	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

// Calendar positions wall-clock time within the academic year. The start
// date is explicit configuration, not ambient state.
type Calendar struct {
	Start      time.Time
	TotalWeeks int
}

// CurrentWeek returns the 1-based academic week containing now. Dates
// before the start still report week 1.
func (c Calendar) CurrentWeek(now time.Time) int {
	days := now.Sub(c.Start).Hours() / 24
	week := int(math.Ceil(days / 7))
	if week < 1 {
		return 1
	}
	return week
}

// TermForWeek maps an academic week to its term: weeks 1-11 are term 1,
// 12-22 term 2, anything later term 3.
func TermForWeek(week int) int {
	switch {
	case week <= 11:
		return 1
	case week <= 22:
		return 2
	default:
		return 3
	}
}

// SubjectProgress reports class-level completion for one subject track.
// A class is delayed only when fewer topics are done than the calendar
// expects AND the latest completion lags behind the current week: a class
// covering the expected count out of order is not flagged.
func SubjectProgress(subjectTopics []models.CurriculumTopic, completedTopicIDs []string, currentWeek int) models.SubjectProgressStatus {
	completed := make(map[string]struct{}, len(completedTopicIDs))
	for _, id := range completedTopicIDs {
		completed[id] = struct{}{}
	}

	totalTopics := len(subjectTopics)
	completedCount := 0
	expectedCount := 0
	lastCompletedWeek := 0
	subjectKey := ""
	for _, topic := range subjectTopics {
		subjectKey = topic.SubjectKey
		if topic.Week < currentWeek {
			expectedCount++
		}
		if _, ok := completed[topic.ID]; ok {
			completedCount++
			if topic.Week > lastCompletedWeek {
				lastCompletedWeek = topic.Week
			}
		}
	}

	delayWeeks := currentWeek - lastCompletedWeek - 1
	if delayWeeks < 0 {
		delayWeeks = 0
	}

	percentage := 0
	if totalTopics > 0 {
		percentage = roundRate(float64(completedCount) / float64(totalTopics))
	}

	return models.SubjectProgressStatus{
		SubjectKey:        subjectKey,
		Percentage:        percentage,
		CompletedCount:    completedCount,
		TotalTopics:       totalTopics,
		CurrentWeek:       currentWeek,
		LastCompletedWeek: lastCompletedWeek,
		IsDelayed:         expectedCount > completedCount && delayWeeks > 0,
		DelayWeeks:        delayWeeks,
	}
}

// StudentSubjectStats reports a student's handling of one subject track.
// Skipped topics count toward the percentage the same as completed ones;
// a skipped topic is handled, not pending.
func StudentSubjectStats(subjectTopics []models.CurriculumTopic, progress []models.StudentProgress) models.StudentSubjectStats {
	total := len(subjectTopics)
	subjectKey := ""
	topicIDs := make(map[string]struct{}, total)
	for _, topic := range subjectTopics {
		subjectKey = topic.SubjectKey
		topicIDs[topic.ID] = struct{}{}
	}

	stats := models.StudentSubjectStats{SubjectKey: subjectKey}
	if total == 0 {
		return stats
	}

	for _, p := range progress {
		if _, ok := topicIDs[p.TopicID]; !ok {
			continue
		}
		switch p.Status {
		case models.ProgressStatusCompleted:
			stats.Completed++
		case models.ProgressStatusSkipped:
			stats.Skipped++
		}
	}

	stats.Percentage = roundRate(float64(stats.Completed+stats.Skipped) / float64(total))
	return stats
}
