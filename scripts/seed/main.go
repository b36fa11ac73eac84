// Command seed loads a demo roster into a running gradebook API so the
// analysis and report endpoints have data to work with. It goes through
// the public HTTP surface rather than the database so the same validation
// rules apply as for real input.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type seeder struct {
	client *http.Client
	base   string
}

func main() {
	var (
		base    string
		level   string
		year    string
		timeout time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080/api/v1", "API base URL")
	flag.StringVar(&level, "level", "AF1", "Level of the demo class (AF1-AF6)")
	flag.StringVar(&year, "year", "2025-2026", "Academic year label")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	s := &seeder{
		client: &http.Client{Timeout: timeout},
		base:   strings.TrimRight(base, "/"),
	}

	classID, err := s.createClass(fmt.Sprintf("%s Demo", level), level, year)
	if err != nil {
		log.Fatalf("create class: %v", err)
	}
	fmt.Printf("class %s created\n", classID)

	names := []string{
		"Ahmed Vall",
		"Fatimetou Mint Sidi",
		"Mohamed Lemine",
		"Aichetou Mint Brahim",
		"Sidi Ould Cheikh",
	}

	studentIDs := make([]string, 0, len(names))
	for _, name := range names {
		id, err := s.createStudent(classID, name)
		if err != nil {
			log.Fatalf("create student %q: %v", name, err)
		}
		studentIDs = append(studentIDs, id)
	}
	fmt.Printf("%d students created\n", len(studentIDs))

	subjects := []string{"islamic_education", "arabic_language", "mathematics"}
	for term := 1; term <= 3; term++ {
		if err := s.saveExamScores(classID, studentIDs, subjects, term); err != nil {
			log.Fatalf("save term %d scores: %v", term, err)
		}
	}
	fmt.Println("exam scores saved for terms 1-3")

	if err := s.saveAttendance(classID, studentIDs); err != nil {
		log.Fatalf("save attendance: %v", err)
	}
	fmt.Println("attendance saved")

	fmt.Printf("done; try GET %s/classes/%s/reports/annual\n", s.base, classID)
}

func (s *seeder) createClass(name, level, year string) (string, error) {
	payload := map[string]interface{}{
		"name":          name,
		"level":         level,
		"academic_year": year,
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := s.post("/classes", payload, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (s *seeder) createStudent(classID, name string) (string, error) {
	payload := map[string]interface{}{
		"full_name":   name,
		"parent_name": "Parent of " + name,
		"class_id":    classID,
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := s.post("/students", payload, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (s *seeder) saveExamScores(classID string, studentIDs, subjects []string, term int) error {
	entries := make([]map[string]interface{}, 0, len(studentIDs)*len(subjects))
	for i, studentID := range studentIDs {
		for j, subject := range subjects {
			// Spread scores so the demo class shows a visible spectrum
			// from weak to excellent in the analysis views.
			score := float64(8 + (i*3+j+term)%12)
			entries = append(entries, map[string]interface{}{
				"student_id":  studentID,
				"subject_key": subject,
				"kind":        "EXAM",
				"term":        term,
				"score":       score,
			})
		}
	}
	payload := map[string]interface{}{
		"class_id": classID,
		"entries":  entries,
	}
	return s.post("/scores", payload, nil)
}

func (s *seeder) saveAttendance(classID string, studentIDs []string) error {
	day := time.Now().UTC().Truncate(24 * time.Hour)
	for offset := 0; offset < 5; offset++ {
		entries := make([]map[string]interface{}, 0, len(studentIDs))
		for i, studentID := range studentIDs {
			status := "PRESENT"
			if (i+offset)%7 == 0 {
				status = "ABSENT"
			} else if (i+offset)%5 == 0 {
				status = "LATE"
			}
			entries = append(entries, map[string]interface{}{
				"student_id": studentID,
				"status":     status,
			})
		}
		payload := map[string]interface{}{
			"class_id": classID,
			"date":     day.AddDate(0, 0, -offset).Format(time.RFC3339),
			"entries":  entries,
		}
		if err := s.post("/attendance", payload, nil); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) post(path string, payload interface{}, dest interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := s.client.Post(s.base+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if dest == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return json.Unmarshal(env.Data, dest)
}
