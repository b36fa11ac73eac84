package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

type mockStudentRepo struct {
	students map[string]models.Student
	deleted  []string
}

func (m *mockStudentRepo) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	out := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if m.students == nil {
		m.students = make(map[string]models.Student)
	}
	if student.ID == "" {
		student.ID = "generated"
	}
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.students, id)
	return nil
}

func TestStudentServiceCreate(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, af1Class(), validator.New(), zap.NewNop())

	student, err := svc.Create(context.Background(), StudentRequest{
		FullName:   "Ahmed Salem",
		ParentName: "Salem",
		ClassID:    "class-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	assert.Equal(t, 1, len(repo.students))
}

func TestStudentServiceCreateRejectsUnknownClass(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, &mockClassRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), StudentRequest{
		FullName:   "Ahmed Salem",
		ParentName: "Salem",
		ClassID:    "missing",
	})
	require.Error(t, err)
	assert.Empty(t, repo.students)
}

func TestStudentServiceUpdateTransfersClass(t *testing.T) {
	repo := &mockStudentRepo{students: map[string]models.Student{
		"id1": {ID: "id1", FullName: "Old", ParentName: "Parent", ClassID: "class-1"},
	}}
	classes := af1Class()
	classes.classes["class-2"] = models.Class{ID: "class-2", Name: "AF2 A"}
	svc := NewStudentService(repo, classes, validator.New(), zap.NewNop())

	updated, err := svc.Update(context.Background(), "id1", StudentRequest{
		FullName:   "New",
		ParentName: "Parent",
		ClassID:    "class-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.FullName)
	assert.Equal(t, "class-2", updated.ClassID)
}

func TestStudentServiceDelete(t *testing.T) {
	repo := &mockStudentRepo{students: map[string]models.Student{
		"id1": {ID: "id1", FullName: "Ahmed", ClassID: "class-1"},
	}}
	svc := NewStudentService(repo, af1Class(), validator.New(), zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), "id1"))
	assert.Contains(t, repo.deleted, "id1")

	err := svc.Delete(context.Background(), "id1")
	require.Error(t, err)
}
