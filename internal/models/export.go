package models

import "time"

// ExportStatus tracks the lifecycle of a queued report export.
type ExportStatus string

const (
	ExportStatusPending   ExportStatus = "PENDING"
	ExportStatusCompleted ExportStatus = "COMPLETED"
	ExportStatusFailed    ExportStatus = "FAILED"
)

// ExportJob describes a persisted annual-report export. FilePath is the
// storage-relative location of the rendered file and never leaves the
// server; clients only see the signed download URL.
type ExportJob struct {
	ID          string       `json:"id"`
	ClassID     string       `json:"class_id"`
	Status      ExportStatus `json:"status"`
	FilePath    string       `json:"-"`
	DownloadURL string       `json:"download_url,omitempty"`
	ExpiresAt   *time.Time   `json:"expires_at,omitempty"`
	Error       string       `json:"error,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}
