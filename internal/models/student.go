package models

import "time"

// Student represents a learner registered in a class. RIMNumber is the
// optional national registration number.
type Student struct {
	ID          string    `db:"id" json:"id"`
	RIMNumber   *string   `db:"rim_number" json:"rim_number,omitempty"`
	FullName    string    `db:"full_name" json:"full_name"`
	ParentName  string    `db:"parent_name" json:"parent_name"`
	ParentPhone *string   `db:"parent_phone" json:"parent_phone,omitempty"`
	ClassID     string    `db:"class_id" json:"class_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// StudentFilter encapsulates search parameters for listing students.
type StudentFilter struct {
	ClassID string
	Search  string
}
