package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/halver/timesheet/internal/domain"
)

// TimeEntryRepository handles time entry data access.
type TimeEntryRepository struct {
	db *sqlx.DB
}

// NewTimeEntryRepository creates a new TimeEntryRepository.
func NewTimeEntryRepository(db *sqlx.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

// FindByID retrieves a time entry by its ID.
func (r *TimeEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.TimeEntry, error) {
	var e domain.TimeEntry
	err := r.db.GetContext(ctx, &e,
		`SELECT id, project_id, user_id, started_at, stopped_at, note
		 FROM time_entries WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find time entry %s: %w", id, err)
	}
	return &e, nil
}

// ListByProject returns all entries for a project, newest first, joined with
// the display name and image of the user who logged each one.
func (r *TimeEntryRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.FeedEntry, error) {
	var entries []domain.FeedEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT e.id, e.project_id, e.user_id, e.started_at, e.stopped_at, e.note,
		        u.name AS user_name, u.image AS user_image
		 FROM time_entries e
		 LEFT JOIN users u ON u.id = e.user_id
		 WHERE e.project_id = $1
		 ORDER BY e.started_at DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list entries for project %s: %w", projectID, err)
	}
	return entries, nil
}

// FindRunning returns the user's running entry in the project, if any.
func (r *TimeEntryRepository) FindRunning(ctx context.Context, projectID uuid.UUID, userID int64) (*domain.TimeEntry, error) {
	var e domain.TimeEntry
	err := r.db.GetContext(ctx, &e,
		`SELECT id, project_id, user_id, started_at, stopped_at, note
		 FROM time_entries
		 WHERE project_id = $1 AND user_id = $2 AND stopped_at IS NULL`,
		projectID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find running entry for project %s user %d: %w", projectID, userID, err)
	}
	return &e, nil
}

// Create inserts a new entry. The partial unique index on running entries
// turns a second concurrent start into a conflict here, even when both
// requests raced past the service's pre-check.
func (r *TimeEntryRepository) Create(ctx context.Context, e domain.TimeEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO time_entries (id, project_id, user_id, started_at, stopped_at, note)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.ProjectID, e.UserID, e.StartedAt, e.StoppedAt, e.Note)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("running entry exists for project %s user %d: %w",
				e.ProjectID, e.UserID, domain.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("project %s: %w", e.ProjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("create time entry: %w", err)
	}
	return nil
}

// Stop sets the stop timestamp and note on an entry.
func (r *TimeEntryRepository) Stop(ctx context.Context, id uuid.UUID, stoppedAt time.Time, note *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE time_entries SET stopped_at = $2, note = $3 WHERE id = $1`,
		id, stoppedAt, note)
	if err != nil {
		return fmt.Errorf("stop time entry %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update overwrites an entry's timestamps and note.
func (r *TimeEntryRepository) Update(ctx context.Context, e domain.TimeEntry) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE time_entries SET started_at = $2, stopped_at = $3, note = $4 WHERE id = $1`,
		e.ID, e.StartedAt, e.StoppedAt, e.Note)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("running entry exists for project %s user %d: %w",
				e.ProjectID, e.UserID, domain.ErrConflict)
		}
		return fmt.Errorf("update time entry %s: %w", e.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an entry.
func (r *TimeEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete time entry %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Postgres error classes the repositories translate into domain sentinels.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	return isPgCode(err, pgUniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return isPgCode(err, pgForeignKeyViolation)
}

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
