package models

// MedicalRecord represents a patient's medical record
type MedicalRecord struct {
	RecordID  int64     `gorm:"primaryKey;autoIncrement" json:"RecordID"`
	PatientID *int64    `gorm:"index;not null" json:"PatientID" validate:"required"`
	Diagnosis string    `gorm:"type:text" json:"Diagnosis" validate:"required"`
	Treatment string    `gorm:"type:text" json:"Treatment"`
	Notes     string    `gorm:"type:text" json:"Notes"`
	Date      Timestamp `gorm:"column:record_date" json:"Date" validate:"required"`
	BaseModel
}

func (m *MedicalRecord) GetID() int64   { return m.RecordID }
func (m *MedicalRecord) SetID(id int64) { m.RecordID = id }
