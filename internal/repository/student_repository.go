package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

// StudentRepository handles student persistence.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the filter, ordered by name.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	query := `SELECT id, rim_number, full_name, parent_name, parent_phone, class_id, created_at
        FROM students WHERE 1=1`
	var args []interface{}
	if filter.ClassID != "" {
		query += fmt.Sprintf(" AND class_id = $%d", len(args)+1)
		args = append(args, filter.ClassID)
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (full_name ILIKE $%d OR rim_number ILIKE $%d)", len(args)+1, len(args)+1)
		args = append(args, "%"+filter.Search+"%")
	}
	query += " ORDER BY full_name ASC"
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID returns one student.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, rim_number, full_name, parent_name, parent_phone, class_id, created_at
        FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if student.CreatedAt.IsZero() {
		student.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO students (id, rim_number, full_name, parent_name, parent_phone, class_id, created_at)
        VALUES (:id, :rim_number, :full_name, :parent_name, :parent_phone, :class_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	const query = `UPDATE students
        SET rim_number = :rim_number, full_name = :full_name, parent_name = :parent_name,
            parent_phone = :parent_phone, class_id = :class_id
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student together with their scores, attendance and
// progress rows in one transaction.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for _, stmt := range []string{
		"DELETE FROM scores WHERE student_id = $1",
		"DELETE FROM attendance WHERE student_id = $1",
		"DELETE FROM student_progress WHERE student_id = $1",
		"DELETE FROM students WHERE id = $1",
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("delete student: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit student delete: %w", err)
	}
	return nil
}
