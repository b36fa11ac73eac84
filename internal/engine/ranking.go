package engine

import (
	"sort"

	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

// RankStudents orders a roster by term exam average and assigns
// competition ranks: ties share a rank and the next distinct average gets
// its 1-based position, producing 1,1,3,4 rather than 1,1,2,3. Students
// without exam records average 0 and are ranked like everyone else.
func RankStudents(students []models.Student, scores []models.ScoreRecord, level levels.Level, term int, cfg *levels.Provider) map[string]int {
	grouped := scoresByStudent(scores)

	type entry struct {
		studentID string
		average   float64
	}
	entries := make([]entry, 0, len(students))
	for _, student := range students {
		stats := TermStats(grouped[student.ID], level, term, cfg)
		entries = append(entries, entry{studentID: student.ID, average: stats.Average})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].average > entries[j].average
	})

	ranks := make(map[string]int, len(entries))
	currentRank := 1
	for i, e := range entries {
		if i > 0 && e.average < entries[i-1].average {
			currentRank = i + 1
		}
		ranks[e.studentID] = currentRank
	}
	return ranks
}
