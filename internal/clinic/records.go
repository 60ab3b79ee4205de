package clinic

// Record is implemented by every typed resource. A nil Identifier marks a
// record the backend has not stored yet.
type Record interface {
	Kind() Kind
	Identifier() *int64
}

// ID returns a pointer to v, for filling identifier and foreign-key fields.
func ID(v int64) *int64 {
	return &v
}

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "Scheduled"
	AppointmentCompleted AppointmentStatus = "Completed"
	AppointmentCanceled  AppointmentStatus = "Canceled"
)

// PaymentStatus is the settlement state of a bill.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentUnpaid  PaymentStatus = "Unpaid"
	PaymentPending PaymentStatus = "Pending"
)

type Patient struct {
	PatientID     *int64  `json:"PatientID"`
	Name          string  `json:"Name" validate:"notblank" label:"Name"`
	Age           Numeric `json:"Age" validate:"finite" label:"Age"`
	Gender        string  `json:"Gender" validate:"notblank" label:"Gender"`
	ContactNumber string  `json:"ContactNumber" validate:"phone" label:"Contact number"`
	Email         string  `json:"Email" validate:"mailbox" label:"Email"`
	Address       string  `json:"Address" validate:"notblank" label:"Address"`
}

func (Patient) Kind() Kind           { return KindPatient }
func (p Patient) Identifier() *int64 { return p.PatientID }

type Doctor struct {
	DoctorID       *int64 `json:"DoctorID"`
	Name           string `json:"Name" validate:"notblank" label:"Name"`
	Specialization string `json:"Specialization" validate:"notblank" label:"Specialization"`
	ContactNumber  string `json:"ContactNumber" validate:"phone" label:"Contact number"`
	Email          string `json:"Email" validate:"mailbox" label:"Email"`
	Address        string `json:"Address" validate:"notblank" label:"Address"`
}

func (Doctor) Kind() Kind           { return KindDoctor }
func (d Doctor) Identifier() *int64 { return d.DoctorID }

// Appointment carries PatientName and DoctorName as read-only display fields
// joined in by the backend on list.
type Appointment struct {
	AppointmentID   *int64            `json:"AppointmentID"`
	PatientID       *int64            `json:"PatientID" validate:"required" label:"Patient"`
	DoctorID        *int64            `json:"DoctorID" validate:"required" label:"Doctor"`
	AppointmentDate string            `json:"AppointmentDate" validate:"required" label:"Date"`
	TimeSlot        string            `json:"TimeSlot" validate:"required" label:"Time"`
	Status          AppointmentStatus `json:"Status" validate:"oneof=Scheduled Completed Canceled" label:"Status"`
	PatientName     string            `json:"PatientName,omitempty"`
	DoctorName      string            `json:"DoctorName,omitempty"`
}

func (Appointment) Kind() Kind           { return KindAppointment }
func (a Appointment) Identifier() *int64 { return a.AppointmentID }

type Billing struct {
	BillID        *int64        `json:"BillID"`
	PatientID     *int64        `json:"PatientID" validate:"required" label:"Patient"`
	AppointmentID *int64        `json:"AppointmentID" validate:"required" label:"Appointment"`
	Amount        Numeric       `json:"Amount" validate:"finite" label:"Amount"`
	PaymentStatus PaymentStatus `json:"PaymentStatus" validate:"oneof=Paid Unpaid Pending" label:"Payment status"`
}

func (Billing) Kind() Kind           { return KindBilling }
func (b Billing) Identifier() *int64 { return b.BillID }

type Prescription struct {
	PrescriptionID  *int64 `json:"PrescriptionID"`
	AppointmentID   *int64 `json:"AppointmentID" validate:"required" label:"Appointment"`
	DoctorID        *int64 `json:"DoctorID" validate:"required" label:"Doctor"`
	PatientID       *int64 `json:"PatientID" validate:"required" label:"Patient"`
	MedicineDetails string `json:"MedicineDetails" validate:"notblank" label:"Medicine details"`
	Dosage          string `json:"Dosage"`
	Instructions    string `json:"Instructions"`
	DateIssued      string `json:"DateIssued" validate:"required" label:"Date"`
}

func (Prescription) Kind() Kind           { return KindPrescription }
func (p Prescription) Identifier() *int64 { return p.PrescriptionID }

type MedicalRecord struct {
	RecordID  *int64 `json:"RecordID"`
	PatientID *int64 `json:"PatientID" validate:"required" label:"Patient"`
	Diagnosis string `json:"Diagnosis" validate:"notblank" label:"Diagnosis"`
	Treatment string `json:"Treatment"`
	Notes     string `json:"Notes"`
	Date      string `json:"Date" validate:"required" label:"Date"`
}

func (MedicalRecord) Kind() Kind           { return KindMedicalRecord }
func (m MedicalRecord) Identifier() *int64 { return m.RecordID }

// Credentials is the login/signup form. Username is only collected on signup.
type Credentials struct {
	Username string `json:"username,omitempty" validate:"notblank" label:"Username"`
	Email    string `json:"email" validate:"notblank,mailbox" label:"Email"`
	Password string `json:"password" validate:"notblank,min=6" label:"Password"`
}
