package models

// CabinetType classifies rooms.
type CabinetType string

const (
	CabinetLaboratory   CabinetType = "LABORATORIJSKI"
	CabinetAuditorium   CabinetType = "AUDITORNI"
	CabinetAmphitheatre CabinetType = "AMFITEATAR"
)

// Cabinet is a room where terms take place.
type Cabinet struct {
	ID       string      `db:"id" json:"id"`
	Number   string      `db:"number" json:"number"`
	Capacity int         `db:"capacity" json:"capacity"`
	Type     CabinetType `db:"type" json:"type"`
}
