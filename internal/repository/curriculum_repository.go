package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

// CurriculumRepository handles curriculum topics and class/student
// progress. Deleting a topic cascades to its progress rows.
type CurriculumRepository struct {
	db *sqlx.DB
}

// NewCurriculumRepository creates a new curriculum repository.
func NewCurriculumRepository(db *sqlx.DB) *CurriculumRepository {
	return &CurriculumRepository{db: db}
}

// ListTopics returns the topics of a level ordered by week, optionally
// restricted to one subject track.
func (r *CurriculumRepository) ListTopics(ctx context.Context, level levels.Level, subjectKey string) ([]models.CurriculumTopic, error) {
	query := `SELECT id, level, subject_key, term, week, topic, competency, created_at
        FROM curriculum_topics WHERE level = $1`
	args := []interface{}{level}
	if subjectKey != "" {
		query += " AND subject_key = $2"
		args = append(args, subjectKey)
	}
	query += " ORDER BY week ASC, subject_key ASC"
	var topics []models.CurriculumTopic
	if err := r.db.SelectContext(ctx, &topics, query, args...); err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// FindTopic returns one topic by ID.
func (r *CurriculumRepository) FindTopic(ctx context.Context, id string) (*models.CurriculumTopic, error) {
	const query = `SELECT id, level, subject_key, term, week, topic, competency, created_at
        FROM curriculum_topics WHERE id = $1`
	var topic models.CurriculumTopic
	if err := r.db.GetContext(ctx, &topic, query, id); err != nil {
		return nil, err
	}
	return &topic, nil
}

// CreateTopic inserts a new curriculum topic.
func (r *CurriculumRepository) CreateTopic(ctx context.Context, topic *models.CurriculumTopic) error {
	if topic.ID == "" {
		topic.ID = uuid.NewString()
	}
	if topic.CreatedAt.IsZero() {
		topic.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO curriculum_topics (id, level, subject_key, term, week, topic, competency, created_at)
        VALUES (:id, :level, :subject_key, :term, :week, :topic, :competency, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, topic); err != nil {
		return fmt.Errorf("create topic: %w", err)
	}
	return nil
}

// UpdateTopic modifies an existing topic.
func (r *CurriculumRepository) UpdateTopic(ctx context.Context, topic *models.CurriculumTopic) error {
	const query = `UPDATE curriculum_topics
        SET subject_key = :subject_key, term = :term, week = :week, topic = :topic, competency = :competency
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, topic); err != nil {
		return fmt.Errorf("update topic: %w", err)
	}
	return nil
}

// DeleteTopic removes a topic and every progress row referencing it.
func (r *CurriculumRepository) DeleteTopic(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for _, stmt := range []string{
		"DELETE FROM class_progress WHERE topic_id = $1",
		"DELETE FROM student_progress WHERE topic_id = $1",
		"DELETE FROM curriculum_topics WHERE id = $1",
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("delete topic: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit topic delete: %w", err)
	}
	return nil
}

// ReplaceLevelTopics clears a level's plan and bulk-inserts a new set of
// topics in one transaction, used when loading a curriculum template.
func (r *CurriculumRepository) ReplaceLevelTopics(ctx context.Context, level levels.Level, topics []models.CurriculumTopic) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for _, stmt := range []string{
		"DELETE FROM class_progress WHERE topic_id IN (SELECT id FROM curriculum_topics WHERE level = $1)",
		"DELETE FROM student_progress WHERE topic_id IN (SELECT id FROM curriculum_topics WHERE level = $1)",
		"DELETE FROM curriculum_topics WHERE level = $1",
	} {
		if _, err := tx.ExecContext(ctx, stmt, level); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("clear level topics: %w", err)
		}
	}
	for i := range topics {
		if topics[i].ID == "" {
			topics[i].ID = uuid.NewString()
		}
		topics[i].Level = level
		if topics[i].CreatedAt.IsZero() {
			topics[i].CreatedAt = time.Now().UTC()
		}
		const insert = `INSERT INTO curriculum_topics (id, level, subject_key, term, week, topic, competency, created_at)
                VALUES (:id, :level, :subject_key, :term, :week, :topic, :competency, :created_at)`
		if _, err := tx.NamedExecContext(ctx, insert, topics[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("insert level topic: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit level topics: %w", err)
	}
	return nil
}

// ListClassProgress returns the completed-topic rows of a class.
func (r *CurriculumRepository) ListClassProgress(ctx context.Context, classID string) ([]models.ClassProgress, error) {
	const query = `SELECT id, class_id, topic_id, completed_at
        FROM class_progress WHERE class_id = $1`
	var progress []models.ClassProgress
	if err := r.db.SelectContext(ctx, &progress, query, classID); err != nil {
		return nil, fmt.Errorf("list class progress: %w", err)
	}
	return progress, nil
}

// SetClassProgress marks or unmarks a topic completed for a class. Both
// directions are idempotent.
func (r *CurriculumRepository) SetClassProgress(ctx context.Context, classID, topicID string, completed bool) error {
	if completed {
		const query = `INSERT INTO class_progress (id, class_id, topic_id, completed_at)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (class_id, topic_id) DO NOTHING`
		if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), classID, topicID, time.Now().UTC()); err != nil {
			return fmt.Errorf("mark class progress: %w", err)
		}
		return nil
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM class_progress WHERE class_id = $1 AND topic_id = $2", classID, topicID); err != nil {
		return fmt.Errorf("unmark class progress: %w", err)
	}
	return nil
}

// ListStudentProgress returns the per-topic status rows of a student.
func (r *CurriculumRepository) ListStudentProgress(ctx context.Context, studentID string) ([]models.StudentProgress, error) {
	const query = `SELECT id, student_id, topic_id, status, updated_at
        FROM student_progress WHERE student_id = $1`
	var progress []models.StudentProgress
	if err := r.db.SelectContext(ctx, &progress, query, studentID); err != nil {
		return nil, fmt.Errorf("list student progress: %w", err)
	}
	return progress, nil
}

// UpsertStudentProgress sets a topic's status for a student, overwriting
// any previous status.
func (r *CurriculumRepository) UpsertStudentProgress(ctx context.Context, progress *models.StudentProgress) error {
	if progress.ID == "" {
		progress.ID = uuid.NewString()
	}
	progress.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO student_progress (id, student_id, topic_id, status, updated_at)
        VALUES (:id, :student_id, :topic_id, :status, :updated_at)
        ON CONFLICT (student_id, topic_id)
        DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, progress); err != nil {
		return fmt.Errorf("upsert student progress: %w", err)
	}
	return nil
}

// DeleteStudentProgress clears a topic's status for a student, returning
// the topic to the untouched state.
func (r *CurriculumRepository) DeleteStudentProgress(ctx context.Context, studentID, topicID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM student_progress WHERE student_id = $1 AND topic_id = $2", studentID, topicID); err != nil {
		return fmt.Errorf("delete student progress: %w", err)
	}
	return nil
}
