package service

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sta-gradebook-api/internal/models"
	appErrors "github.com/noah-isme/sta-gradebook-api/pkg/errors"
	"github.com/noah-isme/sta-gradebook-api/pkg/jobs"
	"github.com/noah-isme/sta-gradebook-api/pkg/storage"
)

type annualRenderer interface {
	AnnualCSV(ctx context.Context, classID string) ([]byte, error)
}

type exportStore interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// ExportConfig tunes persisted report exports.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
	Workers   int
}

// ExportDownload aggregates resolved download data.
type ExportDownload struct {
	File      *os.File
	Filename  string
	SizeBytes int64
	ExpiresAt time.Time
}

// ExportService renders annual reports off the request path, persists
// the files and serves them through signed download links. Job state is
// kept in memory; the files themselves live in the export store and are
// purged once the result TTL passes.
type ExportService struct {
	reports annualRenderer
	classes classFinder
	store   exportStore
	signer  *storage.SignedURLSigner
	queue   *jobs.Queue
	logger  *zap.Logger
	cfg     ExportConfig

	mu      sync.RWMutex
	pending map[string]*models.ExportJob
}

// NewExportService constructs the export service with its own worker queue.
func NewExportService(reports annualRenderer, classes classFinder, store exportStore, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	s := &ExportService{
		reports: reports,
		classes: classes,
		store:   store,
		signer:  signer,
		logger:  logger,
		cfg:     cfg,
		pending: make(map[string]*models.ExportJob),
	}
	s.queue = jobs.NewQueue("report-exports", s.process, jobs.QueueConfig{Workers: cfg.Workers, Logger: logger})
	return s
}

// Start boots the worker pool and the TTL cleanup loop.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
	go s.cleanupLoop(ctx)
}

// Stop drains the worker pool.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// CreateJob registers a pending export for the class and enqueues rendering.
func (s *ExportService) CreateJob(ctx context.Context, classID string) (*models.ExportJob, error) {
	if _, err := s.classes.FindByID(ctx, classID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	job := &models.ExportJob{
		ID:        uuid.NewString(),
		ClassID:   classID,
		Status:    models.ExportStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.pending[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "annual-report-csv", Payload: classID}); err != nil {
		s.fail(job.ID, "failed to enqueue export")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export")
	}
	return s.snapshot(job.ID), nil
}

// Job returns the current state of an export.
func (s *ExportService) Job(id string) (*models.ExportJob, error) {
	if job := s.snapshot(id); job != nil {
		return job, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
}

// ResolveDownload validates the signed token and opens the stored file.
func (s *ExportService) ResolveDownload(token string) (*ExportDownload, error) {
	_, relPath, expiresAt, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "download link invalid or expired")
	}
	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export no longer available")
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export file")
	}
	return &ExportDownload{
		File:      file,
		Filename:  filepath.Base(relPath),
		SizeBytes: info.Size(),
		ExpiresAt: expiresAt,
	}, nil
}

func (s *ExportService) process(ctx context.Context, job jobs.Job) error {
	classID, _ := job.Payload.(string)

	payload, err := s.reports.AnnualCSV(ctx, classID)
	if err != nil {
		s.fail(job.ID, "failed to render report")
		return err
	}

	filename := fmt.Sprintf("annual_%s_%s.csv", sanitizeFilename(classID), time.Now().UTC().Format("20060102_150405"))
	relPath, err := s.store.Save(filename, payload)
	if err != nil {
		s.fail(job.ID, "failed to store export")
		return err
	}

	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		s.fail(job.ID, "failed to sign download link")
		return err
	}

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	s.mu.Lock()
	if j, ok := s.pending[job.ID]; ok {
		j.Status = models.ExportStatusCompleted
		j.FilePath = relPath
		j.DownloadURL = fmt.Sprintf("%s/export/%s", prefix, token)
		j.ExpiresAt = &expiresAt
		j.Error = ""
	}
	s.mu.Unlock()
	return nil
}

func (s *ExportService) cleanupLoop(ctx context.Context) {
	interval := s.cfg.ResultTTL / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.store.CleanupOlderThan(s.cfg.ResultTTL)
			if err != nil {
				s.logger.Warn("export cleanup failed", zap.Error(err))
				continue
			}
			if len(deleted) > 0 {
				s.logger.Info("purged expired exports", zap.Int("count", len(deleted)))
			}
		}
	}
}

func (s *ExportService) snapshot(id string) *models.ExportJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.pending[id]
	if !ok {
		return nil
	}
	copied := *job
	return &copied
}

func (s *ExportService) fail(id, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.pending[id]; ok {
		job.Status = models.ExportStatusFailed
		job.Error = msg
	}
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
