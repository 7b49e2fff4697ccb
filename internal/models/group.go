package models

// StudentGroup is a cohort of students sharing one weekly timetable.
type StudentGroup struct {
	ID           string       `db:"id" json:"id"`
	Name         string       `db:"name" json:"name"`
	StudyProgram StudyProgram `db:"study_program" json:"study_program"`
	YearOfStudy  int          `db:"year_of_study" json:"year_of_study"`
	AlphabetHalf int          `db:"alphabet_half" json:"alphabet_half"`
}

// GroupWithCount adds the number of assigned students.
type GroupWithCount struct {
	StudentGroup
	StudentCount int `db:"student_count" json:"student_count"`
}
