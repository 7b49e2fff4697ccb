package dto

import "github.com/fon-raspored/raspored-api/internal/models"

// CurrentTermResponse describes the class in progress for the student right now.
type CurrentTermResponse struct {
	Exists      bool                `json:"exists"`
	Term        *models.Term        `json:"term,omitempty"`
	IsCheckedIn bool                `json:"is_checked_in"`
	IsHoliday   bool                `json:"is_holiday"`
	HolidayType *models.HolidayType `json:"holiday_type,omitempty"`
}

// CheckInRequest records attendance for a term.
type CheckInRequest struct {
	TermID string `json:"term_id" validate:"required"`
}
