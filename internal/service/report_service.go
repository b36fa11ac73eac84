package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/sta-gradebook-api/internal/engine"
	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/models"
	"github.com/noah-isme/sta-gradebook-api/internal/repository"
	appErrors "github.com/noah-isme/sta-gradebook-api/pkg/errors"
	"github.com/noah-isme/sta-gradebook-api/pkg/export"
)

// ReportService builds the official annual report and its CSV export.
type ReportService struct {
	students studentLister
	classes  classFinder
	scores   scoreReader
	levelCfg *levels.Provider
	exporter *export.CSVExporter
	cache    *CacheService
	logger   *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(students studentLister, classes classFinder, scores scoreReader, levelCfg *levels.Provider, exporter *export.CSVExporter, cache *CacheService, logger *zap.Logger) *ReportService {
	if exporter == nil {
		exporter = export.NewCSVExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{students: students, classes: classes, scores: scores, levelCfg: levelCfg, exporter: exporter, cache: cache, logger: logger}
}

// Annual builds the ranked annual report of a class. Cached entries live
// under the class analysis namespace so score writes invalidate them too.
func (s *ReportService) Annual(ctx context.Context, classID string) ([]models.AnnualReportItem, error) {
	cacheKey := repository.AnalysisKey(classID, "annual-report")
	if s.cache.Enabled() {
		var cached []models.AnnualReportItem
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return cached, nil
		}
	}

	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	students, err := s.students.List(ctx, models.StudentFilter{ClassID: classID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	scores, err := s.scores.List(ctx, models.ScoreFilter{ClassID: classID, Kind: models.ResultKindExam})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load scores")
	}
	report := engine.AnnualReport(students, scores, class.Level, s.levelCfg)
	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, cacheKey, report, 0)
	}
	return report, nil
}

// AnnualCSV renders the annual report as CSV bytes.
func (s *ReportService) AnnualCSV(ctx context.Context, classID string) ([]byte, error) {
	report, err := s.Annual(ctx, classID)
	if err != nil {
		return nil, err
	}
	dataset := export.Dataset{
		Headers: []string{"rank", "student", "term1", "term2", "term3", "annual", "decision"},
	}
	for _, item := range report {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"rank":     strconv.Itoa(item.Rank),
			"student":  item.StudentName,
			"term1":    formatAvg(item.Term1Avg),
			"term2":    formatAvg(item.Term2Avg),
			"term3":    formatAvg(item.Term3Avg),
			"annual":   formatAvg(item.AnnualAvg),
			"decision": item.Decision,
		})
	}
	payload, err := s.exporter.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report csv")
	}
	return payload, nil
}

func formatAvg(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
