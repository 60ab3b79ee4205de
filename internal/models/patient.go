package models

// Patient is a registered patient of the clinic.
type Patient struct {
	PatientID     int64  `gorm:"primaryKey;autoIncrement" json:"PatientID"`
	Name          string `gorm:"size:100;not null;index" json:"Name" validate:"required"`
	Age           int    `json:"Age" validate:"gte=0"`
	Gender        string `gorm:"size:20" json:"Gender" validate:"required"`
	ContactNumber string `gorm:"size:20" json:"ContactNumber" validate:"required"`
	Email         string `gorm:"size:255" json:"Email" validate:"required,email"`
	Address       string `gorm:"size:255" json:"Address" validate:"required"`
	BaseModel
}

func (p *Patient) GetID() int64   { return p.PatientID }
func (p *Patient) SetID(id int64) { p.PatientID = id }
