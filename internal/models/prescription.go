package models

type Prescription struct {
	PrescriptionID  int64     `gorm:"primaryKey;autoIncrement" json:"PrescriptionID"`
	AppointmentID   *int64    `gorm:"index;not null" json:"AppointmentID" validate:"required"`
	DoctorID        *int64    `gorm:"index;not null" json:"DoctorID" validate:"required"`
	PatientID       *int64    `gorm:"index;not null" json:"PatientID" validate:"required"`
	MedicineDetails string    `gorm:"type:text" json:"MedicineDetails" validate:"required"`
	Dosage          string    `gorm:"size:100" json:"Dosage"`
	Instructions    string    `gorm:"type:text" json:"Instructions"`
	DateIssued      Timestamp `json:"DateIssued" validate:"required"`
	BaseModel
}

func (p *Prescription) GetID() int64   { return p.PrescriptionID }
func (p *Prescription) SetID(id int64) { p.PrescriptionID = id }
