// Package report turns time-entry rows into the export formats the app
// offers: two CSV dialects and a paginated PDF table.
package report

import (
	"time"

	"github.com/google/uuid"
)

// Row is one time entry as fed to the serializers. UserName carries the
// display name from the joined user row and is nil when that user is gone.
type Row struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	UserID    int64
	UserName  *string
	StartedAt time.Time
	StoppedAt *time.Time
	Note      *string
}

// UnknownUser is the placeholder written when a row has no user name.
const UnknownUser = "Unknown"

// displayStamp is the human-readable timestamp layout used by the simplified
// CSV and the PDF table.
const displayStamp = "2006-01-02 15:04:05"

func (r Row) elapsed(now time.Time) time.Duration {
	stop := now
	if r.StoppedAt != nil {
		stop = *r.StoppedAt
	}
	return stop.Sub(r.StartedAt)
}

func (r Row) userName() string {
	if r.UserName == nil {
		return UnknownUser
	}
	return *r.UserName
}

func (r Row) note() string {
	if r.Note == nil {
		return ""
	}
	return *r.Note
}
