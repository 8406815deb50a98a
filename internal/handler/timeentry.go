package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/halver/timesheet/internal/domain"
	"github.com/halver/timesheet/internal/service"
)

// TimeEntryHandler handles the timer lifecycle and the project feed.
type TimeEntryHandler struct {
	entries *service.TimeEntryService
}

// NewTimeEntryHandler creates a new TimeEntryHandler.
func NewTimeEntryHandler(entries *service.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{entries: entries}
}

// NoteRequest is the body for start/stop requests.
type NoteRequest struct {
	Note *string `json:"note"`
}

// EditEntryRequest is the body for PATCH /entries/:entryID.
type EditEntryRequest struct {
	StartedAt time.Time  `json:"started_at" validate:"required"`
	StoppedAt *time.Time `json:"stopped_at"`
	Note      *string    `json:"note"`
}

// Feed returns a project's entries plus the viewer's derived totals.
func (h *TimeEntryHandler) Feed(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	projectID, err := uuidParam(c, "projectID")
	if err != nil {
		return err
	}

	feed, err := h.entries.Feed(c.Request().Context(), userID, projectID)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, feed)
}

// Start opens a running entry for the acting user.
func (h *TimeEntryHandler) Start(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	projectID, err := uuidParam(c, "projectID")
	if err != nil {
		return err
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}

	if err := h.entries.Start(c.Request().Context(), userID, projectID, req.Note); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// Stop closes the acting user's running entry.
func (h *TimeEntryHandler) Stop(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	projectID, err := uuidParam(c, "projectID")
	if err != nil {
		return err
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}

	if err := h.entries.Stop(c.Request().Context(), userID, projectID, req.Note); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// Edit overwrites an entry's timestamps and note.
func (h *TimeEntryHandler) Edit(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	entryID, err := uuidParam(c, "entryID")
	if err != nil {
		return err
	}

	var req EditEntryRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.entries.Edit(c.Request().Context(), userID, entryID, req.StartedAt, req.StoppedAt, req.Note); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// Delete removes an entry owned by the acting user.
func (h *TimeEntryHandler) Delete(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	entryID, err := uuidParam(c, "entryID")
	if err != nil {
		return err
	}

	if err := h.entries.Delete(c.Request().Context(), userID, entryID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
