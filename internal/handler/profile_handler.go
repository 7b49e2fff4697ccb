package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fon-raspored/raspored-api/internal/dto"
	"github.com/fon-raspored/raspored-api/internal/middleware"
	"github.com/fon-raspored/raspored-api/internal/service"
	appErrors "github.com/fon-raspored/raspored-api/pkg/errors"
	"github.com/fon-raspored/raspored-api/pkg/response"
)

type profileService interface {
	Get(ctx context.Context, userID string) (*dto.StudentProfileResponse, bool, error)
	UpdateUsername(ctx context.Context, userID string, req dto.UpdateUsernameRequest) (*dto.UpdateUsernameResponse, error)
}

type reportExporter interface {
	Export(ctx context.Context, userID, format string) (*service.ReportFile, error)
}

// ProfileHandler serves the student's own profile.
type ProfileHandler struct {
	profiles profileService
	reports  reportExporter
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(profiles profileService, reports reportExporter) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, reports: reports}
}

// Get godoc
// @Summary Student profile with attendance per subject
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student/profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	profile, cacheHit, err := h.profiles.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil, middleware.CachedMeta(c, cacheHit))
}

// Update godoc
// @Summary Change username
// @Tags Student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpdateUsernameRequest true "New username"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /student/profile [patch]
func (h *ProfileHandler) Update(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	var req dto.UpdateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	resp, err := h.profiles.UpdateUsername(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Export godoc
// @Summary Download attendance report
// @Tags Student
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string false "csv, pdf or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /student/profile/export [get]
func (h *ProfileHandler) Export(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	file, err := h.reports.Export(c.Request.Context(), claims.UserID, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
