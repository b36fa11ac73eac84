package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sta-gradebook-api/internal/engine"
	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
	appErrors "github.com/noah-isme/sta-gradebook-api/pkg/errors"
)

type curriculumRepository interface {
	ListTopics(ctx context.Context, level levels.Level, subjectKey string) ([]models.CurriculumTopic, error)
	FindTopic(ctx context.Context, id string) (*models.CurriculumTopic, error)
	CreateTopic(ctx context.Context, topic *models.CurriculumTopic) error
	UpdateTopic(ctx context.Context, topic *models.CurriculumTopic) error
	DeleteTopic(ctx context.Context, id string) error
	ReplaceLevelTopics(ctx context.Context, level levels.Level, topics []models.CurriculumTopic) error
	ListClassProgress(ctx context.Context, classID string) ([]models.ClassProgress, error)
	SetClassProgress(ctx context.Context, classID, topicID string, completed bool) error
	ListStudentProgress(ctx context.Context, studentID string) ([]models.StudentProgress, error)
	UpsertStudentProgress(ctx context.Context, progress *models.StudentProgress) error
	DeleteStudentProgress(ctx context.Context, studentID, topicID string) error
}

// TopicRequest is the payload for creating or updating a topic.
type TopicRequest struct {
	Level      levels.Level `json:"level" validate:"required"`
	SubjectKey string       `json:"subject_key" validate:"required"`
	Week       int          `json:"week" validate:"required,min=1"`
	Topic      string       `json:"topic" validate:"required"`
	Competency *string      `json:"competency,omitempty"`
}

// TemplateTopic is one entry of a bulk curriculum template load.
type TemplateTopic struct {
	SubjectKey string  `json:"subject_key" validate:"required"`
	Week       int     `json:"week" validate:"required,min=1"`
	Topic      string  `json:"topic" validate:"required"`
	Competency *string `json:"competency,omitempty"`
}

// StudentProgressRequest sets a student's handling of one topic.
type StudentProgressRequest struct {
	StudentID string                `json:"student_id" validate:"required"`
	TopicID   string                `json:"topic_id" validate:"required"`
	Status    models.ProgressStatus `json:"status" validate:"required"`
}

// CurriculumService handles the annual plan and progress tracking.
type CurriculumService struct {
	repo      curriculumRepository
	classes   classFinder
	calendar  engine.Calendar
	levelCfg  *levels.Provider
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCurriculumService constructs the curriculum service.
func NewCurriculumService(repo curriculumRepository, classes classFinder, calendar engine.Calendar, levelCfg *levels.Provider, validate *validator.Validate, logger *zap.Logger) *CurriculumService {
	if levelCfg == nil {
		levelCfg = levels.New(nil)
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CurriculumService{repo: repo, classes: classes, calendar: calendar, levelCfg: levelCfg, validator: validate, logger: logger}
}

// ListTopics returns the plan of a level, optionally for one subject.
func (s *CurriculumService) ListTopics(ctx context.Context, level levels.Level, subjectKey string) ([]models.CurriculumTopic, error) {
	if !level.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown level %q", level))
	}
	topics, err := s.repo.ListTopics(ctx, level, subjectKey)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list topics")
	}
	return topics, nil
}

// CreateTopic adds a topic to a level's plan. The term is derived from
// the week, never supplied by the caller.
func (s *CurriculumService) CreateTopic(ctx context.Context, req TopicRequest) (*models.CurriculumTopic, error) {
	if err := s.validateTopic(req); err != nil {
		return nil, err
	}
	topic := &models.CurriculumTopic{
		Level:      req.Level,
		SubjectKey: req.SubjectKey,
		Term:       engine.TermForWeek(req.Week),
		Week:       req.Week,
		Topic:      req.Topic,
		Competency: req.Competency,
	}
	if err := s.repo.CreateTopic(ctx, topic); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create topic")
	}
	return topic, nil
}

// UpdateTopic modifies an existing topic.
func (s *CurriculumService) UpdateTopic(ctx context.Context, id string, req TopicRequest) (*models.CurriculumTopic, error) {
	if err := s.validateTopic(req); err != nil {
		return nil, err
	}
	topic, err := s.repo.FindTopic(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "topic not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load topic")
	}
	topic.SubjectKey = req.SubjectKey
	topic.Week = req.Week
	topic.Term = engine.TermForWeek(req.Week)
	topic.Topic = req.Topic
	topic.Competency = req.Competency
	if err := s.repo.UpdateTopic(ctx, topic); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update topic")
	}
	return topic, nil
}

// DeleteTopic removes a topic and its progress rows.
func (s *CurriculumService) DeleteTopic(ctx context.Context, id string) error {
	if _, err := s.repo.FindTopic(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "topic not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load topic")
	}
	if err := s.repo.DeleteTopic(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete topic")
	}
	return nil
}

// LoadTemplate replaces a level's entire plan with the provided topics.
// With no entries it seeds a placeholder skeleton instead: one topic per
// configured subject for every week of the academic year, so teachers
// can start from a full grid and rename topics as they plan.
func (s *CurriculumService) LoadTemplate(ctx context.Context, level levels.Level, entries []TemplateTopic) error {
	if !level.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown level %q", level))
	}
	if len(entries) == 0 {
		entries = s.placeholderTemplate(level)
	}
	topics := make([]models.CurriculumTopic, 0, len(entries))
	for _, entry := range entries {
		if err := s.validator.Struct(entry); err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid template topic")
		}
		if entry.Week > s.calendar.TotalWeeks {
			return appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("week %d exceeds the academic year of %d weeks", entry.Week, s.calendar.TotalWeeks))
		}
		topics = append(topics, models.CurriculumTopic{
			SubjectKey: entry.SubjectKey,
			Term:       engine.TermForWeek(entry.Week),
			Week:       entry.Week,
			Topic:      entry.Topic,
			Competency: entry.Competency,
		})
	}
	if err := s.repo.ReplaceLevelTopics(ctx, level, topics); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load template")
	}
	return nil
}

// placeholderTemplate builds the skeleton plan for a level: every
// configured subject gets one placeholder topic per academic week.
func (s *CurriculumService) placeholderTemplate(level levels.Level) []TemplateTopic {
	subjects := make([]string, 0)
	for subject := range s.levelCfg.Subjects(level) {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	entries := make([]TemplateTopic, 0, len(subjects)*s.calendar.TotalWeeks)
	for week := 1; week <= s.calendar.TotalWeeks; week++ {
		for _, subject := range subjects {
			entries = append(entries, TemplateTopic{
				SubjectKey: subject,
				Week:       week,
				Topic:      fmt.Sprintf("موضوع الأسبوع %d", week),
			})
		}
	}
	return entries
}

// SetClassProgress marks or unmarks a topic completed for a class.
func (s *CurriculumService) SetClassProgress(ctx context.Context, classID, topicID string, completed bool) error {
	if _, err := s.repo.FindTopic(ctx, topicID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "topic not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load topic")
	}
	if err := s.repo.SetClassProgress(ctx, classID, topicID, completed); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to set class progress")
	}
	return nil
}

// ClassProgress reports per-subject completion of a class against the
// academic calendar.
func (s *CurriculumService) ClassProgress(ctx context.Context, classID string, now time.Time) ([]models.SubjectProgressStatus, error) {
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	topics, err := s.repo.ListTopics(ctx, class.Level, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load topics")
	}
	progress, err := s.repo.ListClassProgress(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class progress")
	}

	completed := make([]string, 0, len(progress))
	for _, p := range progress {
		completed = append(completed, p.TopicID)
	}
	currentWeek := s.calendar.CurrentWeek(now)

	bySubject := make(map[string][]models.CurriculumTopic)
	order := make([]string, 0)
	for _, topic := range topics {
		if _, seen := bySubject[topic.SubjectKey]; !seen {
			order = append(order, topic.SubjectKey)
		}
		bySubject[topic.SubjectKey] = append(bySubject[topic.SubjectKey], topic)
	}

	statuses := make([]models.SubjectProgressStatus, 0, len(order))
	for _, subject := range order {
		statuses = append(statuses, engine.SubjectProgress(bySubject[subject], completed, currentWeek))
	}
	return statuses, nil
}

// SetStudentProgress records a student's handling of one topic.
func (s *CurriculumService) SetStudentProgress(ctx context.Context, req StudentProgressRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid progress payload")
	}
	if !req.Status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown progress status %q", req.Status))
	}
	progress := &models.StudentProgress{StudentID: req.StudentID, TopicID: req.TopicID, Status: req.Status}
	if err := s.repo.UpsertStudentProgress(ctx, progress); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to set student progress")
	}
	return nil
}

// ClearStudentProgress returns a topic to the untouched state for a student.
func (s *CurriculumService) ClearStudentProgress(ctx context.Context, studentID, topicID string) error {
	if err := s.repo.DeleteStudentProgress(ctx, studentID, topicID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear student progress")
	}
	return nil
}

// StudentProgress reports per-subject handling of the level plan by one
// student. Skipped topics count as handled.
func (s *CurriculumService) StudentProgress(ctx context.Context, studentID string, level levels.Level) ([]models.StudentSubjectStats, error) {
	if !level.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown level %q", level))
	}
	topics, err := s.repo.ListTopics(ctx, level, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load topics")
	}
	progress, err := s.repo.ListStudentProgress(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student progress")
	}

	bySubject := make(map[string][]models.CurriculumTopic)
	order := make([]string, 0)
	for _, topic := range topics {
		if _, seen := bySubject[topic.SubjectKey]; !seen {
			order = append(order, topic.SubjectKey)
		}
		bySubject[topic.SubjectKey] = append(bySubject[topic.SubjectKey], topic)
	}

	stats := make([]models.StudentSubjectStats, 0, len(order))
	for _, subject := range order {
		stats = append(stats, engine.StudentSubjectStats(bySubject[subject], progress))
	}
	return stats, nil
}

func (s *CurriculumService) validateTopic(req TopicRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid topic payload")
	}
	if !req.Level.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown level %q", req.Level))
	}
	if req.Week > s.calendar.TotalWeeks {
		return appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("week %d exceeds the academic year of %d weeks", req.Week, s.calendar.TotalWeeks))
	}
	return nil
}
