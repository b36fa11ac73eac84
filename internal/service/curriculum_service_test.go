package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sta-gradebook-api/internal/engine"
	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
)

type mockCurriculumRepo struct {
	topics          map[string]models.CurriculumTopic
	classProgress   []models.ClassProgress
	studentProgress []models.StudentProgress
	replacedLevel   levels.Level
	replacedTopics  []models.CurriculumTopic
	progressSet     map[string]bool
}

func (m *mockCurriculumRepo) ListTopics(ctx context.Context, level levels.Level, subjectKey string) ([]models.CurriculumTopic, error) {
	out := make([]models.CurriculumTopic, 0, len(m.topics))
	for _, topic := range m.topics {
		if topic.Level != level {
			continue
		}
		if subjectKey != "" && topic.SubjectKey != subjectKey {
			continue
		}
		out = append(out, topic)
	}
	return out, nil
}

func (m *mockCurriculumRepo) FindTopic(ctx context.Context, id string) (*models.CurriculumTopic, error) {
	if topic, ok := m.topics[id]; ok {
		return &topic, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCurriculumRepo) CreateTopic(ctx context.Context, topic *models.CurriculumTopic) error {
	if m.topics == nil {
		m.topics = make(map[string]models.CurriculumTopic)
	}
	if topic.ID == "" {
		topic.ID = "generated"
	}
	m.topics[topic.ID] = *topic
	return nil
}

func (m *mockCurriculumRepo) UpdateTopic(ctx context.Context, topic *models.CurriculumTopic) error {
	m.topics[topic.ID] = *topic
	return nil
}

func (m *mockCurriculumRepo) DeleteTopic(ctx context.Context, id string) error {
	delete(m.topics, id)
	return nil
}

func (m *mockCurriculumRepo) ReplaceLevelTopics(ctx context.Context, level levels.Level, topics []models.CurriculumTopic) error {
	m.replacedLevel = level
	m.replacedTopics = topics
	return nil
}

func (m *mockCurriculumRepo) ListClassProgress(ctx context.Context, classID string) ([]models.ClassProgress, error) {
	return m.classProgress, nil
}

func (m *mockCurriculumRepo) SetClassProgress(ctx context.Context, classID, topicID string, completed bool) error {
	if m.progressSet == nil {
		m.progressSet = make(map[string]bool)
	}
	m.progressSet[topicID] = completed
	return nil
}

func (m *mockCurriculumRepo) ListStudentProgress(ctx context.Context, studentID string) ([]models.StudentProgress, error) {
	return m.studentProgress, nil
}

func (m *mockCurriculumRepo) UpsertStudentProgress(ctx context.Context, progress *models.StudentProgress) error {
	m.studentProgress = append(m.studentProgress, *progress)
	return nil
}

func (m *mockCurriculumRepo) DeleteStudentProgress(ctx context.Context, studentID, topicID string) error {
	kept := m.studentProgress[:0]
	for _, p := range m.studentProgress {
		if p.StudentID != studentID || p.TopicID != topicID {
			kept = append(kept, p)
		}
	}
	m.studentProgress = kept
	return nil
}

func testCalendar() engine.Calendar {
	return engine.Calendar{Start: time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), TotalWeeks: 30}
}

func newCurriculumService(repo *mockCurriculumRepo, classes *mockClassRepo) *CurriculumService {
	if classes == nil {
		classes = af1Class()
	}
	return NewCurriculumService(repo, classes, testCalendar(), levels.New(nil), validator.New(), zap.NewNop())
}

func TestCurriculumServiceCreateTopicDerivesTerm(t *testing.T) {
	repo := &mockCurriculumRepo{}
	svc := newCurriculumService(repo, nil)

	topic, err := svc.CreateTopic(context.Background(), TopicRequest{
		Level:      levels.AF3,
		SubjectKey: "mathematics",
		Week:       14,
		Topic:      "Decimals",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, topic.Term)
	assert.NotEmpty(t, topic.ID)
}

func TestCurriculumServiceCreateTopicRejectsWeekBeyondYear(t *testing.T) {
	svc := newCurriculumService(&mockCurriculumRepo{}, nil)

	_, err := svc.CreateTopic(context.Background(), TopicRequest{
		Level:      levels.AF3,
		SubjectKey: "mathematics",
		Week:       31,
		Topic:      "Too late",
	})
	require.Error(t, err)
}

func TestCurriculumServiceLoadTemplate(t *testing.T) {
	repo := &mockCurriculumRepo{}
	svc := newCurriculumService(repo, nil)

	err := svc.LoadTemplate(context.Background(), levels.AF2, []TemplateTopic{
		{SubjectKey: "mathematics", Week: 1, Topic: "Numbers"},
		{SubjectKey: "mathematics", Week: 12, Topic: "Geometry"},
	})
	require.NoError(t, err)
	assert.Equal(t, levels.AF2, repo.replacedLevel)
	require.Len(t, repo.replacedTopics, 2)
	assert.Equal(t, 1, repo.replacedTopics[0].Term)
	assert.Equal(t, 2, repo.replacedTopics[1].Term)
}

func TestCurriculumServiceLoadTemplateSeedsPlaceholders(t *testing.T) {
	repo := &mockCurriculumRepo{}
	svc := newCurriculumService(repo, nil)

	err := svc.LoadTemplate(context.Background(), levels.AF1, nil)
	require.NoError(t, err)
	assert.Equal(t, levels.AF1, repo.replacedLevel)
	// 6 configured AF1 subjects for each of the 30 academic weeks.
	require.Len(t, repo.replacedTopics, 6*30)
	assert.Equal(t, 1, repo.replacedTopics[0].Term)
	assert.Contains(t, repo.replacedTopics[0].Topic, "الأسبوع 1")

	last := repo.replacedTopics[len(repo.replacedTopics)-1]
	assert.Equal(t, 30, last.Week)
	assert.Equal(t, 3, last.Term)
}

func TestCurriculumServiceClassProgress(t *testing.T) {
	repo := &mockCurriculumRepo{
		topics: map[string]models.CurriculumTopic{
			"t1": {ID: "t1", Level: levels.AF1, SubjectKey: "mathematics", Week: 1},
			"t2": {ID: "t2", Level: levels.AF1, SubjectKey: "mathematics", Week: 2},
			"t3": {ID: "t3", Level: levels.AF1, SubjectKey: "mathematics", Week: 3},
		},
		classProgress: []models.ClassProgress{{ClassID: "class-1", TopicID: "t1"}},
	}
	svc := newCurriculumService(repo, nil)

	// Week 4 of the year: three topics expected, one completed.
	now := time.Date(2025, time.October, 24, 0, 0, 0, 0, time.UTC)
	statuses, err := svc.ClassProgress(context.Background(), "class-1", now)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "mathematics", statuses[0].SubjectKey)
	assert.Equal(t, 1, statuses[0].CompletedCount)
	assert.True(t, statuses[0].IsDelayed)
}

func TestCurriculumServiceSetStudentProgress(t *testing.T) {
	repo := &mockCurriculumRepo{}
	svc := newCurriculumService(repo, nil)

	err := svc.SetStudentProgress(context.Background(), StudentProgressRequest{
		StudentID: "s1",
		TopicID:   "t1",
		Status:    models.ProgressStatusSkipped,
	})
	require.NoError(t, err)
	require.Len(t, repo.studentProgress, 1)
	assert.Equal(t, models.ProgressStatusSkipped, repo.studentProgress[0].Status)
}

func TestCurriculumServiceSetStudentProgressRejectsUnknownStatus(t *testing.T) {
	svc := newCurriculumService(&mockCurriculumRepo{}, nil)

	err := svc.SetStudentProgress(context.Background(), StudentProgressRequest{
		StudentID: "s1",
		TopicID:   "t1",
		Status:    "PENDING",
	})
	require.Error(t, err)
}

func TestCurriculumServiceStudentProgress(t *testing.T) {
	repo := &mockCurriculumRepo{
		topics: map[string]models.CurriculumTopic{
			"t1": {ID: "t1", Level: levels.AF1, SubjectKey: "mathematics", Week: 1},
			"t2": {ID: "t2", Level: levels.AF1, SubjectKey: "mathematics", Week: 2},
		},
		studentProgress: []models.StudentProgress{
			{StudentID: "s1", TopicID: "t1", Status: models.ProgressStatusCompleted},
			{StudentID: "s1", TopicID: "t2", Status: models.ProgressStatusSkipped},
		},
	}
	svc := newCurriculumService(repo, nil)

	stats, err := svc.StudentProgress(context.Background(), "s1", levels.AF1)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 100, stats[0].Percentage)
	assert.Equal(t, 1, stats[0].Skipped)
}
