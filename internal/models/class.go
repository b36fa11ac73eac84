package models

import (
	"time"

	"github.com/noah-isme/sta-gradebook-api/internal/levels"
)

// Class represents one classroom: a named group of students at a single
// level within an academic year.
type Class struct {
	ID           string       `db:"id" json:"id"`
	Name         string       `db:"name" json:"name"`
	Level        levels.Level `db:"level" json:"level"`
	AcademicYear string       `db:"academic_year" json:"academic_year"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}
