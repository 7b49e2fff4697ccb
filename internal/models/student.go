package models

// StudyProgram names the programmes a student can be enrolled in.
type StudyProgram string

const (
	StudyProgramInformationSystems StudyProgram = "Informacioni sistemi"
	StudyProgramManagement         StudyProgram = "Menadzment"
)

// StudentProfile joins the user, student and group rows for a single student.
type StudentProfile struct {
	ID           string        `db:"id" json:"id"`
	Username     string        `db:"username" json:"username"`
	Email        string        `db:"email" json:"email"`
	FirstName    string        `db:"first_name" json:"first_name"`
	LastName     string        `db:"last_name" json:"last_name"`
	IndexNumber  *string       `db:"index_number" json:"index_number,omitempty"`
	StudyProgram *StudyProgram `db:"study_program" json:"study_program,omitempty"`
	YearOfStudy  *int          `db:"year_of_study" json:"year_of_study,omitempty"`
	PictureURL   *string       `db:"picture_url" json:"picture_url,omitempty"`
	GroupID      *string       `db:"group_id" json:"group_id,omitempty"`
	GroupName    *string       `db:"group_name" json:"group_name,omitempty"`
}

// HasGroup reports whether the student is assigned to a group.
func (p *StudentProfile) HasGroup() bool {
	return p != nil && p.GroupID != nil && *p.GroupID != ""
}
