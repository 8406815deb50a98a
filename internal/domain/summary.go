package domain

import (
	"fmt"
	"time"
)

// Summary holds the derived aggregates for one project's entries as seen by
// one viewing user. Nothing in here is persisted.
type Summary struct {
	// Running is the viewer's entry with no stop timestamp, nil if none.
	Running *TimeEntry `json:"running_entry"`
	// PersonalTotal sums (stop ?? now) - start over the viewer's entries.
	PersonalTotal time.Duration `json:"personal_total_ms"`
	// SharedTotal is the same sum over every entry regardless of owner.
	SharedTotal time.Duration `json:"shared_total_ms"`
}

// Summarize derives the running entry and the personal/shared totals from a
// project's entries. The reference time is injected so callers control what
// "now" means for running entries.
//
// Two running entries for the viewer, or a stop timestamp before its start,
// violate invariants the storage layer is supposed to hold; both are reported
// as ErrDataIntegrity rather than silently resolved.
func Summarize(entries []TimeEntry, viewerID int64, now time.Time) (*Summary, error) {
	s := &Summary{}

	for i, e := range entries {
		stop := now
		if e.StoppedAt != nil {
			stop = *e.StoppedAt
			if stop.Before(e.StartedAt) {
				return nil, fmt.Errorf("%w: entry %s stopped before it started", ErrDataIntegrity, e.ID)
			}
		}

		d := stop.Sub(e.StartedAt)
		if d < 0 {
			d = 0
		}
		s.SharedTotal += d

		if e.UserID != viewerID {
			continue
		}
		s.PersonalTotal += d

		if e.StoppedAt == nil {
			if s.Running != nil {
				return nil, fmt.Errorf("%w: multiple running entries for user %d in project %s",
					ErrDataIntegrity, viewerID, e.ProjectID)
			}
			s.Running = &entries[i]
		}
	}

	return s, nil
}
