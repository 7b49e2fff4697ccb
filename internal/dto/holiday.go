package dto

import "github.com/fon-raspored/raspored-api/internal/models"

// CreateHolidayRequest registers a non-teaching day.
type CreateHolidayRequest struct {
	Date string             `json:"date" validate:"required,datetime=2006-01-02"`
	Type models.HolidayType `json:"type" validate:"required,oneof=KOLOKVIJUMSKA_NEDELJA ISPITNI_ROK BEZ_AKTIVNOSTI NERADNI_DAN"`
}

// SyncHolidaysRequest optionally selects the calendar year to import.
type SyncHolidaysRequest struct {
	Year int `json:"year" validate:"omitempty,min=2000,max=2100"`
}

// SyncHolidaysResponse reports the outcome of a public holiday import.
type SyncHolidaysResponse struct {
	Year    int    `json:"year"`
	Source  string `json:"source"`
	Fetched int    `json:"fetched"`
	Added   int    `json:"added"`
}
