package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/halver/timesheet/internal/domain"
)

// ProjectRepository handles project and project-pin data access.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindByID retrieves a project by its ID.
func (r *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var p domain.Project
	err := r.db.GetContext(ctx, &p,
		`SELECT id, name, description, color, owner_id, created_at
		 FROM projects WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find project %s: %w", id, err)
	}
	return &p, nil
}

// ListByOwner returns the owner's projects, newest first, each annotated with
// the viewer's pin state. Owner and viewer are the same user in the current
// API but are kept apart so shared views stay possible.
func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID, viewerID int64) ([]domain.ProjectWithPin, error) {
	var projects []domain.ProjectWithPin
	err := r.db.SelectContext(ctx, &projects,
		`SELECT p.id, p.name, p.description, p.color, p.owner_id, p.created_at,
		        (pp.project_id IS NOT NULL) AS pinned
		 FROM projects p
		 LEFT JOIN project_pins pp ON pp.project_id = p.id AND pp.user_id = $2
		 WHERE p.owner_id = $1
		 ORDER BY p.created_at DESC`, ownerID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list projects for owner %d: %w", ownerID, err)
	}
	return projects, nil
}

// Create inserts a new project.
func (r *ProjectRepository) Create(ctx context.Context, p domain.Project) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, description, color, owner_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Description, p.Color, p.OwnerID, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("project %s: %w", p.ID, domain.ErrConflict)
		}
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// Delete removes a project. Entries and pins go with it via the schema's
// cascade rules.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Pin marks the project as pinned for the user. Pinning an already-pinned
// project violates the pins primary key and surfaces as a conflict.
func (r *ProjectRepository) Pin(ctx context.Context, userID int64, projectID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_pins (user_id, project_id) VALUES ($1, $2)`,
		userID, projectID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("project %s already pinned: %w", projectID, domain.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
		}
		return fmt.Errorf("pin project %s for user %d: %w", projectID, userID, err)
	}
	return nil
}

// Unpin removes the user's pin.
func (r *ProjectRepository) Unpin(ctx context.Context, userID int64, projectID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM project_pins WHERE user_id = $1 AND project_id = $2`,
		userID, projectID)
	if err != nil {
		return fmt.Errorf("unpin project %s for user %d: %w", projectID, userID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
