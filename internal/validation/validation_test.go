package validation

import (
	"reflect"
	"strings"
	"testing"

	"mediassist/internal/clinic"
)

func validPatient() clinic.Patient {
	return clinic.Patient{
		Name:          "Asha Rao",
		Age:           "34",
		Gender:        "Female",
		ContactNumber: "9876543210",
		Email:         "asha@clinic.in",
		Address:       "12 MG Road",
	}
}

func TestValidPatientIsSubmittable(t *testing.T) {
	errs := Validate(validPatient())
	if errs == nil {
		t.Fatal("expected non-nil empty map")
	}
	if !errs.Empty() {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestPatientScenario(t *testing.T) {
	errs := Validate(clinic.Patient{
		Name:          "",
		Age:           "30",
		Gender:        "Male",
		ContactNumber: "12345",
		Email:         "bad",
		Address:       "x",
	})

	want := []string{"ContactNumber", "Email", "Name"}
	if got := errs.Fields(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected errors on %v, got %v", want, got)
	}
	if errs["Name"] != "Name is required." {
		t.Errorf("unexpected Name message %q", errs["Name"])
	}
	if errs["ContactNumber"] != "Contact number must be 10 digits." {
		t.Errorf("unexpected ContactNumber message %q", errs["ContactNumber"])
	}
	if errs["Email"] != "Email has an invalid format." {
		t.Errorf("unexpected Email message %q", errs["Email"])
	}
}

func TestWhitespaceOnlyIsBlank(t *testing.T) {
	p := validPatient()
	p.Address = "   "
	errs := Validate(p)
	if _, ok := errs["Address"]; !ok || len(errs) != 1 {
		t.Errorf("expected only Address error, got %v", errs)
	}
}

func TestNumericFields(t *testing.T) {
	for _, age := range []clinic.Numeric{"", "abc", "NaN"} {
		p := validPatient()
		p.Age = age
		errs := Validate(p)
		if errs["Age"] != "A valid age is required." {
			t.Errorf("age %q: expected age error, got %v", age, errs)
		}
	}

	b := clinic.Billing{PatientID: clinic.ID(1), AppointmentID: clinic.ID(2), Amount: "150.75", PaymentStatus: clinic.PaymentUnpaid}
	if errs := Validate(b); !errs.Empty() {
		t.Errorf("expected valid bill, got %v", errs)
	}
}

func TestForeignKeysMustBeSelected(t *testing.T) {
	errs := Validate(clinic.Prescription{MedicineDetails: "Paracetamol", DateIssued: "2024-06-01"})
	want := []string{"AppointmentID", "DoctorID", "PatientID"}
	if got := errs.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if errs["DoctorID"] != "Doctor is required." {
		t.Errorf("unexpected DoctorID message %q", errs["DoctorID"])
	}
}

func TestAppointmentRules(t *testing.T) {
	errs := Validate(clinic.Appointment{PatientID: clinic.ID(1), DoctorID: clinic.ID(2)})
	want := []string{"AppointmentDate", "Status", "TimeSlot"}
	if got := errs.Fields(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !strings.Contains(errs["Status"], "Scheduled, Completed, Canceled") {
		t.Errorf("unexpected Status message %q", errs["Status"])
	}

	ok := clinic.AppointmentSchema.New()
	ok.PatientID, ok.DoctorID = clinic.ID(1), clinic.ID(2)
	ok.AppointmentDate, ok.TimeSlot = "2024-05-01", "14:30:00"
	if errs := Validate(ok); !errs.Empty() {
		t.Errorf("expected valid appointment, got %v", errs)
	}
}

func TestMedicalRecordOptionalFields(t *testing.T) {
	errs := Validate(clinic.MedicalRecord{PatientID: clinic.ID(4), Diagnosis: "Flu", Date: "2024-06-03"})
	if !errs.Empty() {
		t.Errorf("expected treatment and notes to be optional, got %v", errs)
	}
}

func TestDoctorRules(t *testing.T) {
	errs := Validate(clinic.Doctor{Name: "Dr. Iyer", ContactNumber: "98765432101", Email: "iyer@clinic", Address: "x"})
	want := []string{"ContactNumber", "Email", "Specialization"}
	if got := errs.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestErrorMapWithout(t *testing.T) {
	errs := ErrorMap{"Name": "Name is required.", "Email": "Email has an invalid format."}
	cleared := errs.Without("Name")
	if _, ok := cleared["Name"]; ok {
		t.Error("expected Name cleared")
	}
	if cleared["Email"] == "" {
		t.Error("expected Email kept")
	}
	if len(errs) != 2 {
		t.Error("expected original map untouched")
	}
}

func TestErrorString(t *testing.T) {
	err := &Error{Fields: ErrorMap{"Name": "Name is required.", "Age": "A valid age is required."}}
	want := "validation failed: Age: A valid age is required.; Name: Name is required."
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestCredentials(t *testing.T) {
	errs := Credentials(clinic.Credentials{Email: "", Password: ""}, false)
	if errs["email"] != "Email is required" || errs["password"] != "Password is required" {
		t.Errorf("unexpected messages %v", errs)
	}
	if _, ok := errs["username"]; ok {
		t.Error("expected username ignored on login")
	}

	errs = Credentials(clinic.Credentials{Email: "bad", Password: "12345"}, true)
	if errs["email"] != "Invalid email format" {
		t.Errorf("unexpected email message %q", errs["email"])
	}
	if errs["password"] != "Password must be at least 6 characters" {
		t.Errorf("unexpected password message %q", errs["password"])
	}
	if errs["username"] != "Username is required" {
		t.Errorf("unexpected username message %q", errs["username"])
	}

	if errs := Credentials(clinic.Credentials{Username: "asha", Email: "a@b.co", Password: "123456"}, true); !errs.Empty() {
		t.Errorf("expected valid signup, got %v", errs)
	}
}
