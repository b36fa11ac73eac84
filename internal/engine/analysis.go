package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

const (
	strengthThreshold = 0.75
	weaknessThreshold = 0.50
	maxListedSubjects = 3
)

// generalLevelLabels are the Arabic labels used inside recommendation
// texts shown to teachers and parents.
var generalLevelLabels = map[models.GeneralLevel]string{
	models.GeneralLevelExcellent: "ممتاز",
	models.GeneralLevelGood:      "جيد",
	models.GeneralLevelAverage:   "متوسط",
	models.GeneralLevelWeak:      "ضعيف",
}

// classifyAverage buckets a /20 average into a general level.
func classifyAverage(average float64) models.GeneralLevel {
	switch {
	case average >= 16:
		return models.GeneralLevelExcellent
	case average >= 12:
		return models.GeneralLevelGood
	case average < 10:
		return models.GeneralLevelWeak
	default:
		return models.GeneralLevelAverage
	}
}

// StudentAnalysis builds the rule-based performance profile for one
// student: active-term average, trend against the previous term, general
// level, per-subject strengths and weaknesses for the active term, and
// attendance rate over all of the student's records.
func StudentAnalysis(studentID string, allScores []models.ScoreRecord, attendance []models.AttendanceRecord, level levels.Level, cfg *levels.Provider) models.StudentAnalysis {
	studentScores := make([]models.ScoreRecord, 0, len(allScores))
	for _, record := range allScores {
		if record.StudentID == studentID {
			studentScores = append(studentScores, record)
		}
	}

	stats := [3]models.TermStats{}
	for term := 1; term <= 3; term++ {
		stats[term-1] = TermStats(studentScores, level, term, cfg)
	}

	// The active term is the latest one with recorded exam totals.
	activeTerm := 1
	trend := models.TrendStable
	switch {
	case stats[2].TotalScore > 0:
		activeTerm = 3
		trend = compareAverages(stats[2].Average, stats[1].Average)
	case stats[1].TotalScore > 0:
		activeTerm = 2
		trend = compareAverages(stats[1].Average, stats[0].Average)
	}
	averageScore := stats[activeTerm-1].Average

	generalLevel := classifyAverage(averageScore)

	performance := subjectPerformance(studentScores, level, activeTerm, cfg)

	strengths := make([]models.SubjectPerformance, 0, maxListedSubjects)
	weaknesses := make([]models.SubjectPerformance, 0, maxListedSubjects)
	for _, p := range performance {
		if p.Percent >= strengthThreshold {
			strengths = append(strengths, p)
		}
		if p.Percent <= weaknessThreshold {
			weaknesses = append(weaknesses, p)
		}
	}
	sort.SliceStable(strengths, func(i, j int) bool { return strengths[i].Percent > strengths[j].Percent })
	// worst first, so the most urgent subject leads the list
	sort.SliceStable(weaknesses, func(i, j int) bool { return weaknesses[i].Percent < weaknesses[j].Percent })
	strengths = capList(strengths)
	weaknesses = capList(weaknesses)

	studentAttendance := make([]models.AttendanceRecord, 0, len(attendance))
	for _, record := range attendance {
		if record.StudentID == studentID {
			studentAttendance = append(studentAttendance, record)
		}
	}
	attendanceStats := AttendanceStats(studentAttendance)

	label := generalLevelLabels[generalLevel]
	teacherParts := []string{fmt.Sprintf("مستوى الطالب: %s.", label)}
	parentParts := []string{fmt.Sprintf("مستوى ابنكم: %s.", label)}
	if generalLevel == models.GeneralLevelWeak {
		teacherParts = append(teacherParts, "يحتاج لخطة علاجية مكثفة.")
		parentParts = append(parentParts, "يرجى التواصل مع الإدارة.")
	}

	return models.StudentAnalysis{
		StudentID:             studentID,
		GeneralLevel:          generalLevel,
		AverageScore:          averageScore,
		AttendanceRate:        attendanceStats.PresentRate,
		Strengths:             strengths,
		Weaknesses:            weaknesses,
		Trend:                 trend,
		TeacherRecommendation: strings.Join(teacherParts, " "),
		ParentRecommendation:  strings.Join(parentParts, " "),
	}
}

// ClassAnalysis aggregates per-student profiles across a roster plus
// class-wide subject averages. Subjects without any exam record average 0
// and can surface as the weakest subject.
func ClassAnalysis(students []models.Student, scores []models.ScoreRecord, attendance []models.AttendanceRecord, level levels.Level, cfg *levels.Provider) models.ClassAnalysis {
	if len(students) == 0 {
		return models.ClassAnalysis{TopSubject: "-", WeakestSubject: "-"}
	}

	totalAverage := 0.0
	totalAttendance := 0
	var distribution models.LevelDistribution
	for _, student := range students {
		profile := StudentAnalysis(student.ID, scores, attendance, level, cfg)
		totalAverage += profile.AverageScore
		totalAttendance += profile.AttendanceRate
		switch profile.GeneralLevel {
		case models.GeneralLevelExcellent:
			distribution.Excellent++
		case models.GeneralLevelGood:
			distribution.Good++
		case models.GeneralLevelAverage:
			distribution.Average++
		default:
			distribution.Weak++
		}
	}

	type subjectAvg struct {
		key string
		avg float64
	}
	subjects := cfg.Subjects(level)
	keys := make([]string, 0, len(subjects))
	for key := range subjects {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	averages := make([]subjectAvg, 0, len(keys))
	for _, key := range keys {
		max := subjects[key]
		sum := 0.0
		count := 0
		for _, record := range scores {
			if record.SubjectKey != key || record.Kind != models.ResultKindExam {
				continue
			}
			sum += record.Score / float64(max)
			count++
		}
		avg := 0.0
		if count > 0 {
			avg = sum / float64(count)
		}
		averages = append(averages, subjectAvg{key: key, avg: avg})
	}
	sort.SliceStable(averages, func(i, j int) bool { return averages[i].avg > averages[j].avg })

	topSubject := "-"
	weakestSubject := "-"
	if len(averages) > 0 {
		topSubject = levels.SubjectName(averages[0].key)
		weakestSubject = levels.SubjectName(averages[len(averages)-1].key)
	}

	count := float64(len(students))
	return models.ClassAnalysis{
		TotalStudents:     len(students),
		ClassAverage:      round2(totalAverage / count),
		AttendanceAverage: int(math.Round(float64(totalAttendance) / count)),
		TopSubject:        topSubject,
		WeakestSubject:    weakestSubject,
		Distribution:      distribution,
	}
}

func compareAverages(current, previous float64) models.Trend {
	switch {
	case current > previous:
		return models.TrendUp
	case current < previous:
		return models.TrendDown
	default:
		return models.TrendStable
	}
}

// subjectPerformance computes score/max fractions for the student's exam
// records of one term.
func subjectPerformance(studentScores []models.ScoreRecord, level levels.Level, term int, cfg *levels.Provider) []models.SubjectPerformance {
	subjects := cfg.Subjects(level)
	performance := make([]models.SubjectPerformance, 0, len(studentScores))
	for _, record := range studentScores {
		if record.Kind != models.ResultKindExam || record.Term != term {
			continue
		}
		max := fallbackSubjectMax
		if configured, ok := subjects[record.SubjectKey]; ok {
			max = configured
		}
		percent := 0.0
		if max > 0 {
			percent = record.Score / float64(max)
		}
		performance = append(performance, models.SubjectPerformance{
			SubjectKey:  record.SubjectKey,
			SubjectName: levels.SubjectName(record.SubjectKey),
			Percent:     percent,
		})
	}
	return performance
}

func capList(list []models.SubjectPerformance) []models.SubjectPerformance {
	if len(list) > maxListedSubjects {
		return list[:maxListedSubjects]
	}
	return list
}
