package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

func studentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "rim_number", "full_name", "parent_name", "parent_phone", "class_id", "created_at"}).
		AddRow("s1", nil, "Ahmed Vall", "Vall", nil, "class-1", time.Now())
}

func TestStudentRepositoryListByClassAndSearch(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE 1=1 AND class_id = $1 AND (full_name ILIKE $2 OR rim_number ILIKE $2) ORDER BY full_name ASC")).
		WithArgs("class-1", "%ahmed%").
		WillReturnRows(studentRows())

	students, err := repo.List(context.Background(), models.StudentFilter{ClassID: "class-1", Search: "ahmed"})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Ahmed Vall", students[0].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("INSERT INTO students").
		WillReturnResult(sqlmock.NewResult(1, 1))

	student := &models.Student{FullName: "Ahmed Vall", ParentName: "Vall", ClassID: "class-1"}
	require.NoError(t, repo.Create(context.Background(), student))
	assert.NotEmpty(t, student.ID)
	assert.False(t, student.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDeleteCascades(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM scores WHERE student_id").WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM attendance WHERE student_id").WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM student_progress WHERE student_id").WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM students WHERE id").WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDeleteRollsBackOnError(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM scores WHERE student_id").WithArgs("s1").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	require.Error(t, repo.Delete(context.Background(), "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
