package dto

import (
	"github.com/fon-raspored/raspored-api/internal/models"
	"github.com/fon-raspored/raspored-api/pkg/attendance"
)

// StudentProfileResponse is the student's profile with per-subject attendance.
type StudentProfileResponse struct {
	models.StudentProfile
	SubjectStats []attendance.SubjectStat `json:"subject_stats"`
}

// UpdateUsernameRequest renames the current student.
type UpdateUsernameRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
}

// UpdateUsernameResponse confirms a rename.
type UpdateUsernameResponse struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}
