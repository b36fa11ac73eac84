package models

// Trend describes the direction of a student's averages between the two
// most recent terms with data.
type Trend string

const (
	TrendUp     Trend = "UP"
	TrendDown   Trend = "DOWN"
	TrendStable Trend = "STABLE"
)

// GeneralLevel buckets a student's active-term average.
type GeneralLevel string

const (
	GeneralLevelExcellent GeneralLevel = "excellent"
	GeneralLevelGood      GeneralLevel = "good"
	GeneralLevelAverage   GeneralLevel = "average"
	GeneralLevelWeak      GeneralLevel = "weak"
)

// SubjectPerformance holds a student's relative result in one subject
// for the active term, as a fraction of the subject's configured max.
type SubjectPerformance struct {
	SubjectKey  string  `json:"subject_key"`
	SubjectName string  `json:"subject_name"`
	Percent     float64 `json:"percent"`
}

// StudentAnalysis is the rule-based performance profile of one student.
type StudentAnalysis struct {
	StudentID             string               `json:"student_id"`
	GeneralLevel          GeneralLevel         `json:"general_level"`
	AverageScore          float64              `json:"average_score"`
	AttendanceRate        int                  `json:"attendance_rate"`
	Strengths             []SubjectPerformance `json:"strengths"`
	Weaknesses            []SubjectPerformance `json:"weaknesses"`
	Trend                 Trend                `json:"trend"`
	TeacherRecommendation string               `json:"teacher_recommendation"`
	ParentRecommendation  string               `json:"parent_recommendation"`
}

// LevelDistribution counts students per general level bucket.
type LevelDistribution struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Average   int `json:"average"`
	Weak      int `json:"weak"`
}

// ClassAnalysis aggregates StudentAnalysis over a roster.
type ClassAnalysis struct {
	TotalStudents     int               `json:"total_students"`
	ClassAverage      float64           `json:"class_average"`
	AttendanceAverage int               `json:"attendance_average"`
	TopSubject        string            `json:"top_subject"`
	WeakestSubject    string            `json:"weakest_subject"`
	Distribution      LevelDistribution `json:"distribution"`
}
