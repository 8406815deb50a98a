package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/halver/timesheet/internal/domain"
	"github.com/halver/timesheet/internal/service"
)

// ExportHandler handles the project export endpoints.
type ExportHandler struct {
	exports *service.ExportService
	auth    *service.AuthService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exports *service.ExportService, auth *service.AuthService) *ExportHandler {
	return &ExportHandler{exports: exports, auth: auth}
}

// CSV returns the detailed CSV export as a download envelope.
func (h *ExportHandler) CSV(c echo.Context) error {
	projectID, err := uuidParam(c, "projectID")
	if err != nil {
		return err
	}

	dl, err := h.exports.CSV(c.Request().Context(), projectID)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, dl)
}

// CSVSimple returns the semicolon-separated CSV export as a download envelope.
func (h *ExportHandler) CSVSimple(c echo.Context) error {
	projectID, err := uuidParam(c, "projectID")
	if err != nil {
		return err
	}

	dl, err := h.exports.CSVSimple(c.Request().Context(), projectID)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, dl)
}

// PDF returns the PDF export as a download envelope.
func (h *ExportHandler) PDF(c echo.Context) error {
	projectID, err := uuidParam(c, "projectID")
	if err != nil {
		return err
	}

	dl, err := h.exports.PDF(c.Request().Context(), projectID)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, dl)
}

// Raw serves GET /api/project/export?projectId= as plain text. The check
// order is fixed: missing parameter, then authentication, then UUID shape.
// The body of a success response is the base64-encoded detailed CSV.
func (h *ExportHandler) Raw(c echo.Context) error {
	projectID := c.QueryParam("projectId")
	if projectID == "" {
		return c.String(http.StatusBadRequest, "Bad Request - Missing projectId")
	}

	if _, err := h.bearerUser(c); err != nil {
		return c.String(http.StatusUnauthorized, "Unauthorized")
	}

	id, err := uuid.Parse(projectID)
	if err != nil || id.Version() != 4 {
		return c.String(http.StatusBadRequest, "Bad Request - Invalid projectId")
	}

	dl, err := h.exports.CSV(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.String(http.StatusInternalServerError, "project not found")
		}
		return c.String(http.StatusInternalServerError, err.Error())
	}
	return c.String(http.StatusOK, dl.Data)
}

func (h *ExportHandler) bearerUser(c echo.Context) (int64, error) {
	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, domain.ErrUnauthorized
	}
	return h.auth.ValidateToken(parts[1])
}
