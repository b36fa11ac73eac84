package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

// ScoreRepository handles score persistence. Rows are keyed by the
// natural key (student_id, subject_key, kind, term); term is stored as 0
// for non-exam kinds so one exercise/test cell exists per subject.
type ScoreRepository struct {
	db *sqlx.DB
}

// NewScoreRepository creates a new score repository.
func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// List returns score records matching the filter, newest first.
func (r *ScoreRepository) List(ctx context.Context, filter models.ScoreFilter) ([]models.ScoreRecord, error) {
	query := `SELECT id, student_id, class_id, subject_key, kind, score, max_score, term, created_at, updated_at
        FROM scores WHERE 1=1`
	var args []interface{}
	if filter.ClassID != "" {
		query += fmt.Sprintf(" AND class_id = $%d", len(args)+1)
		args = append(args, filter.ClassID)
	}
	if filter.StudentID != "" {
		query += fmt.Sprintf(" AND student_id = $%d", len(args)+1)
		args = append(args, filter.StudentID)
	}
	if filter.Kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", len(args)+1)
		args = append(args, filter.Kind)
	}
	if filter.Term > 0 {
		query += fmt.Sprintf(" AND term = $%d", len(args)+1)
		args = append(args, filter.Term)
	}
	query += " ORDER BY updated_at DESC"
	var scores []models.ScoreRecord
	if err := r.db.SelectContext(ctx, &scores, query, args...); err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	return scores, nil
}

// ListByStudent returns every score record of one student.
func (r *ScoreRepository) ListByStudent(ctx context.Context, studentID string) ([]models.ScoreRecord, error) {
	return r.List(ctx, models.ScoreFilter{StudentID: studentID})
}

// BulkUpsert inserts or updates a batch of score records in a single
// transaction. Saving the same cell twice overwrites the value.
func (r *ScoreRepository) BulkUpsert(ctx context.Context, records []models.ScoreRecord) error {
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
		now := time.Now().UTC()
		if records[i].CreatedAt.IsZero() {
			records[i].CreatedAt = now
		}
		records[i].UpdatedAt = now
		const query = `INSERT INTO scores (id, student_id, class_id, subject_key, kind, score, max_score, term, created_at, updated_at)
                VALUES (:id, :student_id, :class_id, :subject_key, :kind, :score, :max_score, :term, :created_at, :updated_at)
                ON CONFLICT (student_id, subject_key, kind, term)
                DO UPDATE SET score = EXCLUDED.score, max_score = EXCLUDED.max_score, updated_at = EXCLUDED.updated_at`
		if _, err := tx.NamedExecContext(ctx, query, records[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("bulk upsert score: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scores: %w", err)
	}
	return nil
}

// BulkDelete removes score records by natural key in a single
// transaction. Missing keys are not an error.
func (r *ScoreRepository) BulkDelete(ctx context.Context, keys []models.ScoreKey) error {
	if len(keys) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	const query = `DELETE FROM scores WHERE student_id = $1 AND subject_key = $2 AND kind = $3 AND term = $4`
	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, query, key.StudentID, key.SubjectKey, key.Kind, key.Term); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("delete score: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit score deletes: %w", err)
	}
	return nil
}

// DeleteByStudent removes every score of a student, used when the
// student is removed from the register.
func (r *ScoreRepository) DeleteByStudent(ctx context.Context, studentID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM scores WHERE student_id = $1", studentID); err != nil {
		return fmt.Errorf("delete student scores: %w", err)
	}
	return nil
}
