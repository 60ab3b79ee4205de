package models

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCanceled  AppointmentStatus = "Canceled"
)

// Appointment is a scheduled visit. The date and time slot are separate
// timestamp columns: the date at midnight UTC, the slot on 1970-01-01.
type Appointment struct {
	AppointmentID   int64             `gorm:"primaryKey;autoIncrement" json:"AppointmentID"`
	PatientID       *int64            `gorm:"index;not null" json:"PatientID" validate:"required"`
	DoctorID        *int64            `gorm:"index;not null" json:"DoctorID" validate:"required"`
	AppointmentDate Timestamp         `json:"AppointmentDate" validate:"required"`
	TimeSlot        Timestamp         `json:"TimeSlot" validate:"required"`
	Status          AppointmentStatus `gorm:"size:20;default:'Scheduled'" json:"Status" validate:"omitempty,oneof=Scheduled Completed Canceled"`
	BaseModel
}

func (a *Appointment) GetID() int64   { return a.AppointmentID }
func (a *Appointment) SetID(id int64) { a.AppointmentID = id }

// AppointmentView is the list row: the appointment joined with the names of
// its patient and doctor.
type AppointmentView struct {
	Appointment
	PatientName string `json:"PatientName"`
	DoctorName  string `json:"DoctorName"`
}
