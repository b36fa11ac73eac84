package engine

import (
	"sort"

	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

// passingThreshold is the fixed promotion bar on the /20 scale.
const passingThreshold = 10.0

// AnnualAverage blends the three term averages with the official 1-2-3
// weighting. Missing terms enter as zero; they are not excluded from the
// denominator.
func AnnualAverage(avg1, avg2, avg3 float64) float64 {
	weighted := avg1*1 + avg2*2 + avg3*3
	return round2(weighted / 6)
}

// AnnualReport builds the official annual report for a roster: per-term
// averages, weighted annual average, promotion decision and competition
// rank. The returned slice is sorted by rank (annual average descending).
func AnnualReport(students []models.Student, scores []models.ScoreRecord, level levels.Level, cfg *levels.Provider) []models.AnnualReportItem {
	grouped := scoresByStudent(scores)

	report := make([]models.AnnualReportItem, 0, len(students))
	for _, student := range students {
		studentScores := grouped[student.ID]
		t1 := TermStats(studentScores, level, 1, cfg).Average
		t2 := TermStats(studentScores, level, 2, cfg).Average
		t3 := TermStats(studentScores, level, 3, cfg).Average
		annual := AnnualAverage(t1, t2, t3)

		decision := models.DecisionRepeat
		if annual >= passingThreshold {
			decision = models.DecisionPromote
		}

		report = append(report, models.AnnualReportItem{
			StudentID:   student.ID,
			StudentName: student.FullName,
			Term1Avg:    t1,
			Term2Avg:    t2,
			Term3Avg:    t3,
			AnnualAvg:   annual,
			Decision:    decision,
		})
	}

	sort.SliceStable(report, func(i, j int) bool {
		return report[i].AnnualAvg > report[j].AnnualAvg
	})

	currentRank := 1
	for i := range report {
		if i > 0 && report[i].AnnualAvg < report[i-1].AnnualAvg {
			currentRank = i + 1
		}
		report[i].Rank = currentRank
	}

	return report
}
