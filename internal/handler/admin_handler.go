package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fon-raspored/raspored-api/internal/models"
	"github.com/fon-raspored/raspored-api/pkg/response"
)

type adminService interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
	Groups(ctx context.Context) ([]models.GroupWithCount, error)
}

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	service adminService
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(service adminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Stats godoc
// @Summary Dashboard counts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Groups godoc
// @Summary Groups with student counts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/groups [get]
func (h *AdminHandler) Groups(c *gin.Context) {
	groups, err := h.service.Groups(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups, nil)
}
