package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/halver/timesheet/internal/domain"
)

// In-memory stores standing in for the postgres repositories. They mirror
// the constraints the schema enforces: the pin primary key and the partial
// unique index on running entries.

type fakeProjectStore struct {
	projects map[uuid.UUID]domain.Project
	pins     map[string]bool
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{
		projects: map[uuid.UUID]domain.Project{},
		pins:     map[string]bool{},
	}
}

func pinKey(userID int64, projectID uuid.UUID) string {
	return fmt.Sprintf("%d/%s", userID, projectID)
}

func (s *fakeProjectStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *fakeProjectStore) ListByOwner(_ context.Context, ownerID, viewerID int64) ([]domain.ProjectWithPin, error) {
	var out []domain.ProjectWithPin
	for _, p := range s.projects {
		if p.OwnerID != ownerID {
			continue
		}
		out = append(out, domain.ProjectWithPin{
			Project: p,
			Pinned:  s.pins[pinKey(viewerID, p.ID)],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *fakeProjectStore) Create(_ context.Context, p domain.Project) error {
	if _, ok := s.projects[p.ID]; ok {
		return domain.ErrConflict
	}
	s.projects[p.ID] = p
	return nil
}

func (s *fakeProjectStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.projects, id)
	for k := range s.pins {
		if len(k) > 36 && k[len(k)-36:] == id.String() {
			delete(s.pins, k)
		}
	}
	return nil
}

func (s *fakeProjectStore) Pin(_ context.Context, userID int64, projectID uuid.UUID) error {
	if _, ok := s.projects[projectID]; !ok {
		return domain.ErrNotFound
	}
	k := pinKey(userID, projectID)
	if s.pins[k] {
		return domain.ErrConflict
	}
	s.pins[k] = true
	return nil
}

func (s *fakeProjectStore) Unpin(_ context.Context, userID int64, projectID uuid.UUID) error {
	k := pinKey(userID, projectID)
	if !s.pins[k] {
		return domain.ErrNotFound
	}
	delete(s.pins, k)
	return nil
}

type fakeEntryStore struct {
	users   map[int64]string
	entries map[uuid.UUID]domain.TimeEntry
}

func newFakeEntryStore() *fakeEntryStore {
	return &fakeEntryStore{
		users:   map[int64]string{},
		entries: map[uuid.UUID]domain.TimeEntry{},
	}
}

func (s *fakeEntryStore) FindByID(_ context.Context, id uuid.UUID) (*domain.TimeEntry, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (s *fakeEntryStore) ListByProject(_ context.Context, projectID uuid.UUID) ([]domain.FeedEntry, error) {
	var out []domain.FeedEntry
	for _, e := range s.entries {
		if e.ProjectID != projectID {
			continue
		}
		fe := domain.FeedEntry{TimeEntry: e}
		if name, ok := s.users[e.UserID]; ok {
			fe.UserName = &name
		}
		out = append(out, fe)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out, nil
}

func (s *fakeEntryStore) FindRunning(_ context.Context, projectID uuid.UUID, userID int64) (*domain.TimeEntry, error) {
	for _, e := range s.entries {
		if e.ProjectID == projectID && e.UserID == userID && e.StoppedAt == nil {
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *fakeEntryStore) Create(_ context.Context, e domain.TimeEntry) error {
	if e.StoppedAt == nil {
		for _, other := range s.entries {
			if other.ProjectID == e.ProjectID && other.UserID == e.UserID && other.StoppedAt == nil {
				return domain.ErrConflict
			}
		}
	}
	s.entries[e.ID] = e
	return nil
}

func (s *fakeEntryStore) Stop(_ context.Context, id uuid.UUID, stoppedAt time.Time, note *string) error {
	e, ok := s.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.StoppedAt = &stoppedAt
	e.Note = note
	s.entries[id] = e
	return nil
}

func (s *fakeEntryStore) Update(_ context.Context, e domain.TimeEntry) error {
	if _, ok := s.entries[e.ID]; !ok {
		return domain.ErrNotFound
	}
	s.entries[e.ID] = e
	return nil
}

func (s *fakeEntryStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}
