package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/halver/timesheet/internal/domain"
)

// ProjectStore defines the project data access interface consumed by the
// services.
type ProjectStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerID, viewerID int64) ([]domain.ProjectWithPin, error)
	Create(ctx context.Context, p domain.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	Pin(ctx context.Context, userID int64, projectID uuid.UUID) error
	Unpin(ctx context.Context, userID int64, projectID uuid.UUID) error
}

// ProjectService implements project CRUD and pinning with ownership checks.
type ProjectService struct {
	projects ProjectStore
	now      func() time.Time
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects ProjectStore) *ProjectService {
	return &ProjectService{projects: projects, now: time.Now}
}

// Create inserts a new project owned by the acting user and returns its ID.
func (s *ProjectService) Create(ctx context.Context, actingUserID int64, name string, description *string, color domain.ProjectColor) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, &domain.ValidationError{Field: "name", Message: "must not be empty"}
	}
	if color == "" {
		color = domain.DefaultProjectColor
	}
	if !color.Valid() {
		return uuid.Nil, &domain.ValidationError{Field: "color", Message: "unknown color"}
	}

	p := domain.Project{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Color:       color,
		OwnerID:     actingUserID,
		CreatedAt:   s.now(),
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return uuid.Nil, err
	}
	return p.ID, nil
}

// List returns the acting user's projects with their pin state, newest first.
func (s *ProjectService) List(ctx context.Context, actingUserID int64) ([]domain.ProjectWithPin, error) {
	return s.projects.ListByOwner(ctx, actingUserID, actingUserID)
}

// Delete removes a project. Only the owner may delete it.
func (s *ProjectService) Delete(ctx context.Context, actingUserID int64, projectID uuid.UUID) error {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if p.OwnerID != actingUserID {
		return fmt.Errorf("delete project %s: %w", projectID, domain.ErrForbidden)
	}
	return s.projects.Delete(ctx, projectID)
}

// Pin marks the project as pinned for the acting user. Pinning twice is a
// conflict, not a no-op.
func (s *ProjectService) Pin(ctx context.Context, actingUserID int64, projectID uuid.UUID) error {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return err
	}
	return s.projects.Pin(ctx, actingUserID, projectID)
}

// Unpin removes the acting user's pin from the project.
func (s *ProjectService) Unpin(ctx context.Context, actingUserID int64, projectID uuid.UUID) error {
	return s.projects.Unpin(ctx, actingUserID, projectID)
}
