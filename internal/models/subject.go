package models

// Subject is a course taught during the semester.
type Subject struct {
	ID          string  `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	ESPB        int     `db:"espb" json:"espb"`
	Description *string `db:"description" json:"description,omitempty"`
}
