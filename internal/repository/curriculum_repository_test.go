package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

func TestCurriculumRepositoryListTopics(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCurriculumRepository(db)

	rows := sqlmock.NewRows([]string{"id", "level", "subject_key", "term", "week", "topic", "competency", "created_at"}).
		AddRow("topic-1", "AF3", "mathematics", 1, 3, "Fractions", nil, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("FROM curriculum_topics WHERE level = $1 AND subject_key = $2 ORDER BY week ASC")).
		WithArgs(levels.AF3, "mathematics").
		WillReturnRows(rows)

	topics, err := repo.ListTopics(context.Background(), levels.AF3, "mathematics")
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, 3, topics[0].Week)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurriculumRepositoryDeleteTopicCascades(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCurriculumRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM class_progress WHERE topic_id = $1")).
		WithArgs("topic-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM student_progress WHERE topic_id = $1")).
		WithArgs("topic-1").
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM curriculum_topics WHERE id = $1")).
		WithArgs("topic-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteTopic(context.Background(), "topic-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurriculumRepositoryReplaceLevelTopics(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCurriculumRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM class_progress").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM student_progress").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM curriculum_topics").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO curriculum_topics").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	topics := []models.CurriculumTopic{
		{SubjectKey: "mathematics", Term: 1, Week: 1, Topic: "Numbers"},
	}
	err := repo.ReplaceLevelTopics(context.Background(), levels.AF1, topics)
	require.NoError(t, err)
	assert.Equal(t, levels.AF1, topics[0].Level)
	assert.NotEmpty(t, topics[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurriculumRepositorySetClassProgress(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCurriculumRepository(db)

	mock.ExpectExec("INSERT INTO class_progress").
		WithArgs(sqlmock.AnyArg(), "class-1", "topic-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.SetClassProgress(context.Background(), "class-1", "topic-1", true))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM class_progress WHERE class_id = $1 AND topic_id = $2")).
		WithArgs("class-1", "topic-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetClassProgress(context.Background(), "class-1", "topic-1", false))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurriculumRepositoryUpsertStudentProgress(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCurriculumRepository(db)

	mock.ExpectExec("INSERT INTO student_progress").
		WillReturnResult(sqlmock.NewResult(1, 1))

	progress := &models.StudentProgress{StudentID: "s1", TopicID: "topic-1", Status: models.ProgressStatusSkipped}
	err := repo.UpsertStudentProgress(context.Background(), progress)
	require.NoError(t, err)
	assert.NotEmpty(t, progress.ID)
	assert.False(t, progress.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
