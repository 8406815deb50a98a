package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halver/timesheet/internal/domain"
)

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()
	store := newFakeProjectStore()
	svc := NewProjectService(store)

	t.Run("creates a project and returns its id", func(t *testing.T) {
		id, err := svc.Create(ctx, 1, "website relaunch", nil, domain.ColorBlue)
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, id)

		p, err := store.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "website relaunch", p.Name)
		assert.Equal(t, domain.ColorBlue, p.Color)
		assert.Equal(t, int64(1), p.OwnerID)
	})

	t.Run("empty color falls back to the default", func(t *testing.T) {
		id, err := svc.Create(ctx, 1, "side project", nil, "")
		require.NoError(t, err)

		p, err := store.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultProjectColor, p.Color)
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		_, err := svc.Create(ctx, 1, "   ", nil, domain.ColorBlue)
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "name", vErr.Field)
	})

	t.Run("rejects a color outside the palette", func(t *testing.T) {
		_, err := svc.Create(ctx, 1, "ok", nil, "magenta")
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "color", vErr.Field)
	})
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()
	store := newFakeProjectStore()
	svc := NewProjectService(store)

	id, err := svc.Create(ctx, 1, "to be deleted", nil, "")
	require.NoError(t, err)

	t.Run("a non-owner cannot delete and the row survives", func(t *testing.T) {
		err := svc.Delete(ctx, 2, id)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		_, err = store.FindByID(ctx, id)
		assert.NoError(t, err)
	})

	t.Run("unknown project is not found", func(t *testing.T) {
		err := svc.Delete(ctx, 1, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, 1, id))

		_, err := store.FindByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestProjectService_Pins(t *testing.T) {
	ctx := context.Background()
	store := newFakeProjectStore()
	svc := NewProjectService(store)

	id, err := svc.Create(ctx, 1, "pinnable", nil, "")
	require.NoError(t, err)

	t.Run("pin then list shows the pin", func(t *testing.T) {
		require.NoError(t, svc.Pin(ctx, 1, id))

		projects, err := svc.List(ctx, 1)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.True(t, projects[0].Pinned)
	})

	t.Run("pinning twice is a conflict", func(t *testing.T) {
		err := svc.Pin(ctx, 1, id)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("pins are per user", func(t *testing.T) {
		assert.NoError(t, svc.Pin(ctx, 2, id))
	})

	t.Run("unpin removes the pin", func(t *testing.T) {
		require.NoError(t, svc.Unpin(ctx, 1, id))

		projects, err := svc.List(ctx, 1)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.False(t, projects[0].Pinned)
	})

	t.Run("unpinning an unpinned project is not found", func(t *testing.T) {
		err := svc.Unpin(ctx, 1, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("pinning an unknown project is not found", func(t *testing.T) {
		err := svc.Pin(ctx, 1, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
