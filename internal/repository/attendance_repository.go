package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

// AttendanceRepository handles daily attendance persistence. One row
// exists per (student_id, date); saving a day again replaces it.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository creates a new attendance repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ListByClass returns attendance records of a class, optionally bounded
// by an inclusive date range. Zero bounds are ignored.
func (r *AttendanceRepository) ListByClass(ctx context.Context, classID string, from, to time.Time) ([]models.AttendanceRecord, error) {
	query := `SELECT id, student_id, class_id, date, status, justification, created_at
        FROM attendance WHERE class_id = $1`
	args := []interface{}{classID}
	if !from.IsZero() {
		query += fmt.Sprintf(" AND date >= $%d", len(args)+1)
		args = append(args, from)
	}
	if !to.IsZero() {
		query += fmt.Sprintf(" AND date <= $%d", len(args)+1)
		args = append(args, to)
	}
	query += " ORDER BY date DESC"
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// ListByStudent returns every attendance record of one student.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]models.AttendanceRecord, error) {
	const query = `SELECT id, student_id, class_id, date, status, justification, created_at
        FROM attendance WHERE student_id = $1 ORDER BY date DESC`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("list student attendance: %w", err)
	}
	return records, nil
}

// SaveBatch replaces the attendance entries for each (student, date)
// pair in a single transaction: the previous row for the pair is deleted
// before the new one is inserted, so re-saving a day is idempotent.
func (r *AttendanceRepository) SaveBatch(ctx context.Context, records []models.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.NewString()
		}
		if records[i].CreatedAt.IsZero() {
			records[i].CreatedAt = time.Now().UTC()
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM attendance WHERE student_id = $1 AND date = $2",
			records[i].StudentID, records[i].Date); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("replace attendance: %w", err)
		}
		const insert = `INSERT INTO attendance (id, student_id, class_id, date, status, justification, created_at)
                VALUES (:id, :student_id, :class_id, :date, :status, :justification, :created_at)`
		if _, err := tx.NamedExecContext(ctx, insert, records[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("insert attendance: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit attendance: %w", err)
	}
	return nil
}

// DeleteByStudent removes every attendance record of a student.
func (r *AttendanceRepository) DeleteByStudent(ctx context.Context, studentID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM attendance WHERE student_id = $1", studentID); err != nil {
		return fmt.Errorf("delete student attendance: %w", err)
	}
	return nil
}
