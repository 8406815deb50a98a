package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimeEntry is a single start/stop timing record against a project.
// A nil StoppedAt means the entry is still running.
type TimeEntry struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	ProjectID uuid.UUID  `json:"project_id" db:"project_id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	StartedAt time.Time  `json:"started_at" db:"started_at"`
	StoppedAt *time.Time `json:"stopped_at" db:"stopped_at"`
	Note      *string    `json:"note" db:"note"`
}

// Running reports whether the entry has no stop timestamp yet.
func (e TimeEntry) Running() bool {
	return e.StoppedAt == nil
}

// FeedEntry is a time entry joined with the display fields of the user who
// logged it. UserName and UserImage are nil when the user row is gone.
type FeedEntry struct {
	TimeEntry
	UserName  *string `json:"user_name" db:"user_name"`
	UserImage *string `json:"user_image" db:"user_image"`
}
