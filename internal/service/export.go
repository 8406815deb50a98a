package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/halver/timesheet/internal/domain"
	"github.com/halver/timesheet/internal/report"
)

// Download is an export payload ready for client-side download: the bytes
// are base64-encoded so they travel safely inside a JSON response.
type Download struct {
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

// ExportService produces the CSV and PDF exports for a project.
type ExportService struct {
	projects ProjectStore
	entries  EntryStore
	now      func() time.Time
}

// NewExportService creates a new ExportService.
func NewExportService(projects ProjectStore, entries EntryStore) *ExportService {
	return &ExportService{projects: projects, entries: entries, now: time.Now}
}

// CSV exports the project's entries in the detailed comma-separated dialect.
func (s *ExportService) CSV(ctx context.Context, projectID uuid.UUID) (*Download, error) {
	p, rows, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return encode(p, "csv", "text/csv", report.DetailedCSV(rows)), nil
}

// CSVSimple exports the project's entries in the semicolon-separated dialect
// with a derived duration column.
func (s *ExportService) CSVSimple(ctx context.Context, projectID uuid.UUID) (*Download, error) {
	p, rows, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	data, err := report.SimpleCSV(rows, s.now())
	if err != nil {
		return nil, fmt.Errorf("export simple csv for project %s: %w", projectID, err)
	}
	return encode(p, "csv", "text/csv", data), nil
}

// PDF exports the project's entries as a paginated table document.
func (s *ExportService) PDF(ctx context.Context, projectID uuid.UUID) (*Download, error) {
	p, rows, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	data, err := report.PDF(rows, s.now())
	if err != nil {
		return nil, fmt.Errorf("export pdf for project %s: %w", projectID, err)
	}
	return encode(p, "pdf", "application/pdf", data), nil
}

func (s *ExportService) load(ctx context.Context, projectID uuid.UUID) (*domain.Project, []report.Row, error) {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	entries, err := s.entries.ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]report.Row, len(entries))
	for i, e := range entries {
		rows[i] = report.Row{
			ID:        e.ID,
			ProjectID: e.ProjectID,
			UserID:    e.UserID,
			UserName:  e.UserName,
			StartedAt: e.StartedAt,
			StoppedAt: e.StoppedAt,
			Note:      e.Note,
		}
	}
	return p, rows, nil
}

func encode(p *domain.Project, ext, mimeType string, data []byte) *Download {
	return &Download{
		Filename: fmt.Sprintf("%s-%s.%s", p.Name, p.ID, ext),
		MIMEType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	}
}
