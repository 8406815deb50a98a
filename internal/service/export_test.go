package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halver/timesheet/internal/domain"
)

func newExportFixture(t *testing.T) (*ExportService, uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	projects := newFakeProjectStore()
	entries := newFakeEntryStore()
	entries.users[1] = "alice"

	projectID, err := NewProjectService(projects).Create(ctx, 1, "exported", nil, "")
	require.NoError(t, err)

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	stop := now.Add(-time.Hour)
	require.NoError(t, entries.Create(ctx, domain.TimeEntry{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    1,
		StartedAt: now.Add(-2 * time.Hour),
		StoppedAt: &stop,
		Note:      strPtr("worked"),
	}))

	svc := NewExportService(projects, entries)
	svc.now = func() time.Time { return now }
	return svc, projectID
}

func TestExportService(t *testing.T) {
	ctx := context.Background()

	t.Run("detailed csv download", func(t *testing.T) {
		svc, projectID := newExportFixture(t)

		dl, err := svc.CSV(ctx, projectID)
		require.NoError(t, err)

		assert.Equal(t, fmt.Sprintf("exported-%s.csv", projectID), dl.Filename)
		assert.Equal(t, "text/csv", dl.MIMEType)

		raw, err := base64.StdEncoding.DecodeString(dl.Data)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(raw), "id,projectId,userId,userName,startedAt,stoppedAt,note"))
		assert.Contains(t, string(raw), `"alice"`)
	})

	t.Run("simple csv download carries the byte order mark", func(t *testing.T) {
		svc, projectID := newExportFixture(t)

		dl, err := svc.CSVSimple(ctx, projectID)
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(dl.Data)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(raw), "\ufeff"))
		assert.Contains(t, string(raw), "01:00:00")
	})

	t.Run("pdf download", func(t *testing.T) {
		svc, projectID := newExportFixture(t)

		dl, err := svc.PDF(ctx, projectID)
		require.NoError(t, err)

		assert.Equal(t, fmt.Sprintf("exported-%s.pdf", projectID), dl.Filename)
		assert.Equal(t, "application/pdf", dl.MIMEType)

		raw, err := base64.StdEncoding.DecodeString(dl.Data)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(raw), "%PDF-"))
	})

	t.Run("unknown project is not found", func(t *testing.T) {
		svc, _ := newExportFixture(t)

		_, err := svc.CSV(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
