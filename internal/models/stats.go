package models

// AdminStats holds the headline counts of the admin dashboard.
type AdminStats struct {
	TermsCount    int `db:"terms_count" json:"terms_count"`
	StudentsCount int `db:"students_count" json:"students_count"`
	GroupsCount   int `db:"groups_count" json:"groups_count"`
}
