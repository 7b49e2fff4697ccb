package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/fon-raspored/raspored-api/internal/dto"
	"github.com/fon-raspored/raspored-api/internal/models"
	appErrors "github.com/fon-raspored/raspored-api/pkg/errors"
	"github.com/fon-raspored/raspored-api/pkg/response"
)

type holidayService interface {
	List(ctx context.Context) ([]models.Holiday, error)
	Create(ctx context.Context, req dto.CreateHolidayRequest) (*models.Holiday, error)
	Delete(ctx context.Context, id string) error
	Sync(ctx context.Context, year int) (*dto.SyncHolidaysResponse, error)
}

// HolidayHandler manages non-teaching days.
type HolidayHandler struct {
	service   holidayService
	validator *validator.Validate
}

// NewHolidayHandler constructs the handler.
func NewHolidayHandler(service holidayService, validate *validator.Validate) *HolidayHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &HolidayHandler{service: service, validator: validate}
}

// List godoc
// @Summary List holidays
// @Tags Holidays
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/holidays [get]
// @Router /admin/holidays [get]
func (h *HolidayHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list, nil)
}

// Create godoc
// @Summary Add a holiday
// @Tags Holidays
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateHolidayRequest true "Holiday"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/holidays [post]
func (h *HolidayHandler) Create(c *gin.Context) {
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	holiday, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, holiday)
}

// Delete godoc
// @Summary Remove a holiday
// @Tags Holidays
// @Security BearerAuth
// @Param id path string true "Holiday ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/holidays/{id} [delete]
func (h *HolidayHandler) Delete(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id is required"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Sync godoc
// @Summary Import public holidays
// @Description Fetches the public holidays of a year and stores the missing ones as NERADNI_DAN.
// @Tags Holidays
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SyncHolidaysRequest false "Year, defaults to the current one"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /admin/holidays/sync [post]
func (h *HolidayHandler) Sync(c *gin.Context) {
	var req dto.SyncHolidaysRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
			return
		}
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "year must be between 2000 and 2100"))
		return
	}
	resp, err := h.service.Sync(c.Request.Context(), req.Year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
