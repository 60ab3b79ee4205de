package models

// PaymentStatus represents the settlement state of a bill
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentUnpaid  PaymentStatus = "Unpaid"
	PaymentPending PaymentStatus = "Pending"
)

// Billing is the bill raised for one appointment.
type Billing struct {
	BillID        int64         `gorm:"primaryKey;autoIncrement" json:"BillID"`
	PatientID     *int64        `gorm:"index;not null" json:"PatientID" validate:"required"`
	AppointmentID *int64        `gorm:"index;not null" json:"AppointmentID" validate:"required"`
	Amount        float64       `gorm:"type:decimal(10,2)" json:"Amount" validate:"gte=0"`
	PaymentStatus PaymentStatus `gorm:"size:20;default:'Paid'" json:"PaymentStatus" validate:"omitempty,oneof=Paid Unpaid Pending"`
	BaseModel
}

func (b *Billing) GetID() int64   { return b.BillID }
func (b *Billing) SetID(id int64) { b.BillID = id }
