package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/halver/timesheet/internal/domain"
	"github.com/halver/timesheet/internal/service"
)

// ProjectHandler handles project CRUD and pinning endpoints.
type ProjectHandler struct {
	projects *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// CreateProjectRequest is the body for POST /projects.
type CreateProjectRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Color       string  `json:"color" validate:"omitempty,oneof=purple green blue red yellow pink indigo gray"`
}

// List returns the acting user's projects with pin state.
func (h *ProjectHandler) List(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	projects, err := h.projects.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, projects)
}

// Create creates a project and returns its ID.
func (h *ProjectHandler) Create(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := h.projects.Create(c.Request().Context(), userID, req.Name, req.Description, domain.ProjectColor(req.Color))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, map[string]any{"id": id})
}

// Delete removes a project owned by the acting user.
func (h *ProjectHandler) Delete(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	projectID, err := uuidParam(c, "projectID")
	if err != nil {
		return err
	}

	if err := h.projects.Delete(c.Request().Context(), userID, projectID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Pin pins a project for the acting user.
func (h *ProjectHandler) Pin(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	projectID, err := uuidParam(c, "projectID")
	if err != nil {
		return err
	}

	if err := h.projects.Pin(c.Request().Context(), userID, projectID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Unpin removes the acting user's pin.
func (h *ProjectHandler) Unpin(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	projectID, err := uuidParam(c, "projectID")
	if err != nil {
		return err
	}

	if err := h.projects.Unpin(c.Request().Context(), userID, projectID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// uuidParam parses a UUID path parameter, reporting a validation error for
// malformed values.
func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, &domain.ValidationError{Field: name, Message: "must be a valid UUID"}
	}
	return id, nil
}
