package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExportStatusStarted   = "started"
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// ExportJob records one run of the export pipeline for a session.
type ExportJob struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	FileName  string    `json:"file_name"`
	Pages     int       `json:"pages"`
	Bytes     int       `json:"bytes"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
