package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fon-raspored/raspored-api/internal/dto"
	"github.com/fon-raspored/raspored-api/internal/models"
	appErrors "github.com/fon-raspored/raspored-api/pkg/errors"
	"github.com/fon-raspored/raspored-api/pkg/response"
)

type attendanceService interface {
	CurrentTerm(ctx context.Context, userID string, now time.Time) (*dto.CurrentTermResponse, error)
	CheckIn(ctx context.Context, userID, termID string, now time.Time) (*models.Attendance, error)
	Schedule(ctx context.Context, userID string) ([]models.Term, error)
}

// AttendanceHandler exposes the check-in flow and the weekly timetable.
type AttendanceHandler struct {
	service attendanceService
	now     func() time.Time
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service, now: time.Now}
}

// CurrentTerm godoc
// @Summary Class in progress for the student's group
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/current-term [get]
func (h *AttendanceHandler) CurrentTerm(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	resp, err := h.service.CurrentTerm(c.Request.Context(), claims.UserID, h.now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// CheckIn godoc
// @Summary Record attendance for the class in progress
// @Tags Student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CheckInRequest true "Term to check in to"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /student/attendance [post]
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "term_id is required"))
		return
	}
	record, err := h.service.CheckIn(c.Request.Context(), claims.UserID, req.TermID, h.now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Schedule godoc
// @Summary Weekly timetable of the student's group
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/schedule [get]
func (h *AttendanceHandler) Schedule(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	terms, err := h.service.Schedule(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, terms, nil)
}
