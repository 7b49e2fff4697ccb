package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fon-raspored/raspored-api/internal/middleware"
	"github.com/fon-raspored/raspored-api/internal/models"
	"github.com/fon-raspored/raspored-api/pkg/response"
)

type catalogService interface {
	Cabinets(ctx context.Context) ([]models.Cabinet, bool, error)
	Subjects(ctx context.Context) ([]models.Subject, bool, error)
}

// CatalogHandler lists rooms and subjects.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(service catalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Cabinets godoc
// @Summary List cabinets
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /cabinets [get]
func (h *CatalogHandler) Cabinets(c *gin.Context) {
	cabinets, hit, err := h.service.Cabinets(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cabinets, nil, middleware.CachedMeta(c, hit))
}

// Subjects godoc
// @Summary List subjects
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *CatalogHandler) Subjects(c *gin.Context) {
	subjects, hit, err := h.service.Subjects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil, middleware.CachedMeta(c, hit))
}
