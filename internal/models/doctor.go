package models

type Doctor struct {
	DoctorID       int64  `gorm:"primaryKey;autoIncrement" json:"DoctorID"`
	Name           string `gorm:"size:100;not null;index" json:"Name" validate:"required"`
	Specialization string `gorm:"size:100" json:"Specialization" validate:"required"`
	ContactNumber  string `gorm:"size:20" json:"ContactNumber" validate:"required"`
	Email          string `gorm:"size:255" json:"Email" validate:"required,email"`
	Address        string `gorm:"size:255" json:"Address" validate:"required"`
	BaseModel
}

func (d *Doctor) GetID() int64   { return d.DoctorID }
func (d *Doctor) SetID(id int64) { d.DoctorID = id }
