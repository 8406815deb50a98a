package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(project uuid.UUID, userID int64, start time.Time, stop *time.Time) TimeEntry {
	return TimeEntry{
		ID:        uuid.New(),
		ProjectID: project,
		UserID:    userID,
		StartedAt: start,
		StoppedAt: stop,
	}
}

func TestSummarize(t *testing.T) {
	project := uuid.New()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("empty input yields zero totals and no running entry", func(t *testing.T) {
		s, err := Summarize(nil, 1, now)
		require.NoError(t, err)
		assert.Nil(t, s.Running)
		assert.Zero(t, s.PersonalTotal)
		assert.Zero(t, s.SharedTotal)
	})

	t.Run("personal total is duration times own entry count", func(t *testing.T) {
		const d = 25 * time.Minute
		var entries []TimeEntry
		for i := 0; i < 4; i++ {
			start := now.Add(time.Duration(-i-1) * time.Hour)
			stop := start.Add(d)
			entries = append(entries, entry(project, 1, start, &stop))
		}
		// Another user's entry only counts toward the shared total.
		otherStop := now.Add(-30 * time.Minute)
		entries = append(entries, entry(project, 2, now.Add(-1*time.Hour), &otherStop))

		s, err := Summarize(entries, 1, now)
		require.NoError(t, err)
		assert.Nil(t, s.Running)
		assert.Equal(t, 4*d, s.PersonalTotal)
		assert.Equal(t, 4*d+30*time.Minute, s.SharedTotal)
	})

	t.Run("running entry counts up to now", func(t *testing.T) {
		entries := []TimeEntry{entry(project, 1, now.Add(-10*time.Minute), nil)}

		s, err := Summarize(entries, 1, now)
		require.NoError(t, err)
		require.NotNil(t, s.Running)
		assert.Equal(t, entries[0].ID, s.Running.ID)
		assert.Equal(t, 10*time.Minute, s.PersonalTotal)
		assert.Equal(t, 10*time.Minute, s.SharedTotal)
	})

	t.Run("someone else's running entry is not the viewer's", func(t *testing.T) {
		entries := []TimeEntry{entry(project, 2, now.Add(-10*time.Minute), nil)}

		s, err := Summarize(entries, 1, now)
		require.NoError(t, err)
		assert.Nil(t, s.Running)
		assert.Zero(t, s.PersonalTotal)
		assert.Equal(t, 10*time.Minute, s.SharedTotal)
	})

	t.Run("two running entries for the viewer is a data integrity error", func(t *testing.T) {
		entries := []TimeEntry{
			entry(project, 1, now.Add(-10*time.Minute), nil),
			entry(project, 1, now.Add(-5*time.Minute), nil),
		}

		_, err := Summarize(entries, 1, now)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDataIntegrity)
	})

	t.Run("stop before start is a data integrity error", func(t *testing.T) {
		stop := now.Add(-2 * time.Hour)
		entries := []TimeEntry{entry(project, 1, now.Add(-1*time.Hour), &stop)}

		_, err := Summarize(entries, 1, now)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDataIntegrity)
	})
}
