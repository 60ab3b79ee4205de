package printout

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"mediassist/internal/clinic"
)

func render(t *testing.T, doc Document) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return buf.String()
}

func TestBillReceipt(t *testing.T) {
	printed := time.Date(2024, 6, 9, 10, 0, 0, 0, time.UTC)
	doc := Bill(clinic.Billing{BillID: clinic.ID(4), AppointmentID: clinic.ID(11), Amount: "1500", PaymentStatus: clinic.PaymentPending}, "", printed)

	out := render(t, doc)
	for _, want := range []string{"Billing Receipt", "Unknown", "Appt #11", "₹1500", "Pending", "09/06/2024", "Thank you for visiting!"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected receipt to contain %q", want)
		}
	}
}

func TestBillUsesPatientLabel(t *testing.T) {
	doc := Bill(clinic.Billing{Amount: "10"}, "Asha", time.Now())
	if doc.Rows[0].Value != "Asha" {
		t.Errorf("expected Asha, got %q", doc.Rows[0].Value)
	}
	if doc.Rows[1].Value != "" {
		t.Errorf("expected no appointment label, got %q", doc.Rows[1].Value)
	}
}

func TestPrescriptionDocument(t *testing.T) {
	doc := Prescription(clinic.Prescription{
		MedicineDetails: "Amoxicillin",
		Dosage:          "500mg",
		Instructions:    "Twice daily",
		DateIssued:      "2024-06-02",
	}, "Dr. Iyer", "")

	out := render(t, doc)
	for _, want := range []string{"Prescription Details", "Dr. Iyer", "Amoxicillin", "500mg", "Twice daily", "2024-06-02"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected prescription to contain %q", want)
		}
	}
	if doc.Rows[1].Value != "" {
		t.Errorf("expected empty patient label, got %q", doc.Rows[1].Value)
	}
}

func TestAppointmentDocumentEscapes(t *testing.T) {
	doc := Appointment(clinic.Appointment{
		PatientName:     "<script>x</script>",
		DoctorName:      "Dr. Iyer",
		AppointmentDate: "2024-05-01",
		TimeSlot:        "14:30",
		Status:          clinic.AppointmentScheduled,
	})
	out := render(t, doc)
	if strings.Contains(out, "<script>x") {
		t.Error("expected names to be escaped")
	}
	for _, want := range []string{"Appointment Details", "Dr. Iyer", "2024-05-01", "14:30", "Scheduled"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected appointment to contain %q", want)
		}
	}
}
