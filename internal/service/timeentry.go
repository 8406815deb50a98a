package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/halver/timesheet/internal/domain"
	"github.com/halver/timesheet/internal/timefmt"
)

// EntryStore defines the time entry data access interface consumed by the
// services.
type EntryStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.TimeEntry, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.FeedEntry, error)
	FindRunning(ctx context.Context, projectID uuid.UUID, userID int64) (*domain.TimeEntry, error)
	Create(ctx context.Context, e domain.TimeEntry) error
	Stop(ctx context.Context, id uuid.UUID, stoppedAt time.Time, note *string) error
	Update(ctx context.Context, e domain.TimeEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Feed is a project's entry list together with the viewer's derived
// aggregates. The totals are repeated as display labels so clients render
// them without duplicating the formatting rules.
type Feed struct {
	Entries            []domain.FeedEntry `json:"entries"`
	Summary            *domain.Summary    `json:"summary"`
	PersonalTotalLabel string             `json:"personal_total_label"`
	SharedTotalLabel   string             `json:"shared_total_label"`
}

// TimeEntryService implements the start/stop/edit/delete lifecycle and the
// project feed.
type TimeEntryService struct {
	entries  EntryStore
	projects ProjectStore
	now      func() time.Time
}

// NewTimeEntryService creates a new TimeEntryService.
func NewTimeEntryService(entries EntryStore, projects ProjectStore) *TimeEntryService {
	return &TimeEntryService{entries: entries, projects: projects, now: time.Now}
}

// Start opens a running entry for the acting user in the project. At most
// one entry may be running per (project, user); the pre-check gives the
// friendly error and the storage schema's partial unique index closes the
// race two concurrent starts could otherwise win together.
func (s *TimeEntryService) Start(ctx context.Context, actingUserID int64, projectID uuid.UUID, note *string) error {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return err
	}

	_, err := s.entries.FindRunning(ctx, projectID, actingUserID)
	switch {
	case err == nil:
		return fmt.Errorf("a time entry is already running for this project: %w", domain.ErrConflict)
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	return s.entries.Create(ctx, domain.TimeEntry{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    actingUserID,
		StartedAt: s.now(),
		Note:      note,
	})
}

// Stop closes the acting user's running entry in the project. A non-empty
// note replaces the entry's note; otherwise the prior note is kept. Clearing
// a note goes through Edit, which overwrites unconditionally.
func (s *TimeEntryService) Stop(ctx context.Context, actingUserID int64, projectID uuid.UUID, note *string) error {
	running, err := s.entries.FindRunning(ctx, projectID, actingUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no running time entry for this project: %w", domain.ErrNotFound)
		}
		return err
	}

	finalNote := running.Note
	if note != nil && strings.TrimSpace(*note) != "" {
		finalNote = note
	}

	return s.entries.Stop(ctx, running.ID, s.now(), finalNote)
}

// Edit overwrites an entry's timestamps and note. Only the entry's owner may
// edit it. A stop timestamp at or before the start is rejected; a nil stop
// makes the entry running again.
func (s *TimeEntryService) Edit(ctx context.Context, actingUserID int64, entryID uuid.UUID, startedAt time.Time, stoppedAt *time.Time, note *string) error {
	e, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return err
	}
	if e.UserID != actingUserID {
		return fmt.Errorf("edit entry %s: %w", entryID, domain.ErrForbidden)
	}
	if stoppedAt != nil && !stoppedAt.After(startedAt) {
		return &domain.ValidationError{Field: "stopped_at", Message: "must be after started_at"}
	}

	e.StartedAt = startedAt
	e.StoppedAt = stoppedAt
	e.Note = note
	return s.entries.Update(ctx, *e)
}

// Delete removes an entry. Only the entry's owner may delete it.
func (s *TimeEntryService) Delete(ctx context.Context, actingUserID int64, entryID uuid.UUID) error {
	e, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return err
	}
	if e.UserID != actingUserID {
		return fmt.Errorf("delete entry %s: %w", entryID, domain.ErrForbidden)
	}
	return s.entries.Delete(ctx, entryID)
}

// Feed returns the project's entries, newest first, plus the viewer's
// aggregates derived from them.
func (s *TimeEntryService) Feed(ctx context.Context, actingUserID int64, projectID uuid.UUID) (*Feed, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	feedEntries, err := s.entries.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.TimeEntry, len(feedEntries))
	for i, fe := range feedEntries {
		entries[i] = fe.TimeEntry
	}

	summary, err := domain.Summarize(entries, actingUserID, s.now())
	if err != nil {
		return nil, err
	}

	return &Feed{
		Entries:            feedEntries,
		Summary:            summary,
		PersonalTotalLabel: timefmt.Compact(summary.PersonalTotal.Milliseconds()),
		SharedTotalLabel:   timefmt.Compact(summary.SharedTotal.Milliseconds()),
	}, nil
}
