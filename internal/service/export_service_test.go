package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sta-gradebook-api/internal/models"
	"github.com/noah-isme/sta-gradebook-api/pkg/storage"
)

type mockAnnualRenderer struct {
	payload []byte
	err     error
}

func (m *mockAnnualRenderer) AnnualCSV(ctx context.Context, classID string) ([]byte, error) {
	return m.payload, m.err
}

func newExportService(t *testing.T, renderer *mockAnnualRenderer) *ExportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	svc := NewExportService(renderer, af1Class(), store, signer, ExportConfig{APIPrefix: "/api/v1", ResultTTL: time.Hour}, zap.NewNop())
	svc.Start(context.Background())
	t.Cleanup(svc.Stop)
	return svc
}

func waitForStatus(t *testing.T, svc *ExportService, id string, status models.ExportStatus) *models.ExportJob {
	t.Helper()
	var job *models.ExportJob
	require.Eventually(t, func() bool {
		current, err := svc.Job(id)
		if err != nil {
			return false
		}
		job = current
		return current.Status == status
	}, 2*time.Second, 10*time.Millisecond)
	return job
}

func TestExportServiceLifecycle(t *testing.T) {
	renderer := &mockAnnualRenderer{payload: []byte("rank,student\n1,Ahmed\n")}
	svc := newExportService(t, renderer)

	job, err := svc.CreateJob(context.Background(), "class-1")
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusPending, job.Status)
	assert.Equal(t, "class-1", job.ClassID)

	completed := waitForStatus(t, svc, job.ID, models.ExportStatusCompleted)
	require.NotNil(t, completed.ExpiresAt)
	require.True(t, strings.HasPrefix(completed.DownloadURL, "/api/v1/export/"), completed.DownloadURL)

	token := strings.TrimPrefix(completed.DownloadURL, "/api/v1/export/")
	download, err := svc.ResolveDownload(token)
	require.NoError(t, err)
	defer download.File.Close() //nolint:errcheck

	content, err := io.ReadAll(download.File)
	require.NoError(t, err)
	assert.Equal(t, renderer.payload, content)
	assert.Equal(t, int64(len(renderer.payload)), download.SizeBytes)
	assert.True(t, strings.HasSuffix(download.Filename, ".csv"))
}

func TestExportServiceUnknownClass(t *testing.T) {
	svc := newExportService(t, &mockAnnualRenderer{payload: []byte("x")})

	_, err := svc.CreateJob(context.Background(), "missing")
	require.Error(t, err)
}

func TestExportServiceRenderFailureMarksJobFailed(t *testing.T) {
	renderer := &mockAnnualRenderer{err: fmt.Errorf("boom")}
	svc := newExportService(t, renderer)

	job, err := svc.CreateJob(context.Background(), "class-1")
	require.NoError(t, err)

	failed := waitForStatus(t, svc, job.ID, models.ExportStatusFailed)
	assert.NotEmpty(t, failed.Error)
	assert.Empty(t, failed.DownloadURL)
}

func TestExportServiceUnknownJob(t *testing.T) {
	svc := newExportService(t, &mockAnnualRenderer{})

	_, err := svc.Job("missing")
	require.Error(t, err)
}

func TestExportServiceDownloadRejectsBadToken(t *testing.T) {
	svc := newExportService(t, &mockAnnualRenderer{})

	_, err := svc.ResolveDownload("not-a-token")
	require.Error(t, err)
}
