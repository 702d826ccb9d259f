package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cv-builder/internal/domain"
	"cv-builder/internal/model"
	"cv-builder/pkg/document"
	"cv-builder/pkg/pagination"
	"cv-builder/pkg/preview"

	"github.com/google/uuid"
)

// Capturer turns a rendered HTML page into a raster of one element.
type Capturer interface {
	Capture(ctx context.Context, html string, surfaceID string) (document.Raster, error)
}

type ExportsRepo interface {
	Save(ctx context.Context, j *domain.ExportJob) error
}

// ExportResult is the downloadable document produced by one export.
type ExportResult struct {
	FileName string
	PDF      []byte
	Pages    int
	Layout   pagination.Layout
}

type Exporter struct {
	capturer Capturer
	repo     ExportsRepo
	creator  string
}

func NewExporter(c Capturer, repo ExportsRepo, creator string) *Exporter {
	return &Exporter{capturer: c, repo: repo, creator: creator}
}

// Export runs the pipeline for a session: render, capture, paginate,
// assemble. The session is only read. A second export of the same session
// while one is running fails with ErrExportInFlight.
func (e *Exporter) Export(ctx context.Context, s *Session) (*ExportResult, error) {
	if err := s.beginExport(); err != nil {
		return nil, err
	}
	defer s.endExport()

	snap := s.Snapshot()
	job := &domain.ExportJob{
		ID:        uuid.New(),
		SessionID: snap.ID,
		FileName:  document.FileName(snap.CV.PersonalDetails.FullName),
		Status:    domain.ExportStatusStarted,
		CreatedAt: time.Now().UTC(),
	}

	res, err := e.ExportCV(ctx, snap.CV, snap.Options)
	job.UpdatedAt = time.Now().UTC()
	if err != nil {
		job.Status = domain.ExportStatusFailed
		job.Error = err.Error()
	} else {
		job.Status = domain.ExportStatusCompleted
		job.Pages = res.Pages
		job.Bytes = len(res.PDF)
	}
	e.record(ctx, job)

	if err != nil {
		return nil, err
	}
	return res, nil
}

// ExportCV runs the pipeline for a record outside any session.
func (e *Exporter) ExportCV(ctx context.Context, cv model.CV, opts model.Options) (*ExportResult, error) {
	html, err := preview.Render(cv, opts)
	if err != nil {
		return nil, err
	}

	raster, err := e.capturer.Capture(ctx, html, preview.SurfaceID)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}

	layout, err := pagination.PaginateA4(raster.Width, raster.Height)
	if err != nil {
		return nil, fmt.Errorf("paginate: %w", err)
	}

	pdf, err := document.Assemble(raster, layout, document.Meta{
		Title:   cv.PersonalDetails.FullName,
		Author:  cv.PersonalDetails.FullName,
		Creator: e.creator,
	})
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}

	slog.Info("cv exported",
		"raster_width", raster.Width,
		"raster_height", raster.Height,
		"scaled_height_mm", layout.ScaledHeight,
		"pages", layout.Pages(),
		"bytes", len(pdf),
	)

	return &ExportResult{
		FileName: document.FileName(cv.PersonalDetails.FullName),
		PDF:      pdf,
		Pages:    layout.Pages(),
		Layout:   layout,
	}, nil
}

// record writes the export log entry; failures are logged, never returned.
func (e *Exporter) record(ctx context.Context, job *domain.ExportJob) {
	if e.repo == nil {
		return
	}
	if err := e.repo.Save(ctx, job); err != nil {
		slog.Warn("failed to save export log", "export", job.ID, "error", err)
	}
}
