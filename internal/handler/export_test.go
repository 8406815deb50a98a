package handler

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halver/timesheet/internal/domain"
	"github.com/halver/timesheet/internal/service"
)

const testSecret = "test-secret"

type stubProjectStore struct {
	project domain.Project
}

func (s *stubProjectStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	if id != s.project.ID {
		return nil, domain.ErrNotFound
	}
	p := s.project
	return &p, nil
}

func (s *stubProjectStore) ListByOwner(context.Context, int64, int64) ([]domain.ProjectWithPin, error) {
	return nil, nil
}
func (s *stubProjectStore) Create(context.Context, domain.Project) error { return nil }

func (s *stubProjectStore) Delete(context.Context, uuid.UUID) error { return nil }

func (s *stubProjectStore) Pin(context.Context, int64, uuid.UUID) error { return nil }

func (s *stubProjectStore) Unpin(context.Context, int64, uuid.UUID) error { return nil }

type stubEntryStore struct {
	entries []domain.FeedEntry
}

func (s *stubEntryStore) FindByID(context.Context, uuid.UUID) (*domain.TimeEntry, error) {
	return nil, domain.ErrNotFound
}

func (s *stubEntryStore) ListByProject(context.Context, uuid.UUID) ([]domain.FeedEntry, error) {
	return s.entries, nil
}

func (s *stubEntryStore) FindRunning(context.Context, uuid.UUID, int64) (*domain.TimeEntry, error) {
	return nil, domain.ErrNotFound
}

func (s *stubEntryStore) Create(context.Context, domain.TimeEntry) error { return nil }

func (s *stubEntryStore) Stop(context.Context, uuid.UUID, time.Time, *string) error { return nil }

func (s *stubEntryStore) Update(context.Context, domain.TimeEntry) error { return nil }

func (s *stubEntryStore) Delete(context.Context, uuid.UUID) error { return nil }

func signAccessToken(t *testing.T, userID int64) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"type": "access",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newExportTestServer(t *testing.T) (*echo.Echo, uuid.UUID) {
	t.Helper()

	projectID := uuid.New()
	stop := time.Date(2026, 5, 1, 11, 0, 0, 0, time.UTC)
	projects := &stubProjectStore{project: domain.Project{
		ID:      projectID,
		Name:    "exported",
		OwnerID: 1,
	}}
	entries := &stubEntryStore{entries: []domain.FeedEntry{{
		TimeEntry: domain.TimeEntry{
			ID:        uuid.New(),
			ProjectID: projectID,
			UserID:    1,
			StartedAt: stop.Add(-time.Hour),
			StoppedAt: &stop,
		},
	}}}

	authSvc := service.NewAuthService(nil, service.AuthConfig{JWTSecret: testSecret})
	exportSvc := service.NewExportService(projects, entries)

	e := echo.New()
	e.Validator = NewAppValidator()
	e.HTTPErrorHandler = HTTPErrorHandler
	e.GET("/api/project/export", NewExportHandler(exportSvc, authSvc).Raw)
	return e, projectID
}

func TestExportHandler_Raw(t *testing.T) {
	e, projectID := newExportTestServer(t)

	do := func(target, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing projectId beats the auth check", func(t *testing.T) {
		rec := do("/api/project/export", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Bad Request - Missing projectId", rec.Body.String())
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rec := do("/api/project/export?projectId="+projectID.String(), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthorized", rec.Body.String())
	})

	t.Run("malformed projectId", func(t *testing.T) {
		rec := do("/api/project/export?projectId=not-a-uuid", signAccessToken(t, 1))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-v4 uuid is rejected", func(t *testing.T) {
		// Version 1 layout, syntactically valid.
		rec := do("/api/project/export?projectId=8a6e0804-2bd0-11ef-bd01-0242ac120002", signAccessToken(t, 1))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("success returns base64 csv", func(t *testing.T) {
		rec := do("/api/project/export?projectId="+projectID.String(), signAccessToken(t, 1))
		require.Equal(t, http.StatusOK, rec.Code)

		raw, err := base64.StdEncoding.DecodeString(rec.Body.String())
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(raw), "id,projectId,userId,userName,startedAt,stoppedAt,note"))
	})

	t.Run("unknown project reports a server error", func(t *testing.T) {
		rec := do("/api/project/export?projectId="+uuid.NewString(), signAccessToken(t, 1))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
