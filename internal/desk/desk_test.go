package desk

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediassist/internal/api"
	"mediassist/internal/clinic"
	"mediassist/internal/config"
	"mediassist/internal/editor"
	"mediassist/internal/metrics"
	"mediassist/internal/routes"
	"mediassist/internal/store"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Success(msg string) { n.add(msg) }
func (n *recordingNotifier) Failure(msg string) { n.add(msg) }

func (n *recordingNotifier) add(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *recordingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}

// newClinic starts the development API on in-memory stores and returns a
// client for it.
func newClinic(t *testing.T) *api.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := routes.NewRouter(config.ServerConfig{Origin: "http://localhost:5173", JWTExpirationMinutes: 5},
		store.NewMemorySet(), zap.NewNop(), metrics.NewCollector("desk_test"))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	c, err := api.NewClient(srv.URL + "/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func fill[R clinic.Record](t *testing.T, p *Page[R], values map[string]string) {
	t.Helper()
	for field, raw := range values {
		if err := p.Set(field, raw); err != nil {
			t.Fatalf("setting %s: %v", field, err)
		}
	}
}

func create[R clinic.Record](t *testing.T, p *Page[R], values map[string]string) {
	t.Helper()
	if err := p.Add(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fill(t, p, values)
	if err := p.Submit(context.Background()); err != nil {
		t.Fatalf("submitting %s: %v (errors %v, inline %q)", p.Schema.Kind, err, p.Editor.Errors(), p.Editor.SubmitError())
	}
}

// seed stores one patient, one doctor and one appointment between them.
func seed(t *testing.T, c *api.Client) {
	t.Helper()
	ctx := context.Background()

	patients := Patients(c)
	if err := patients.Mount(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	create(t, patients, map[string]string{
		"Name": "Asha", "Age": "34", "Gender": "Female",
		"ContactNumber": "9876543210", "Email": "asha@example.com", "Address": "Pune",
	})

	doctors := Doctors(c)
	if err := doctors.Mount(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	create(t, doctors, map[string]string{
		"Name": "Dr. Iyer", "Specialization": "ENT",
		"ContactNumber": "9000000000", "Email": "iyer@example.com", "Address": "Pune",
	})

	appts := Appointments(c)
	if err := appts.Mount(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	create(t, appts, map[string]string{
		"PatientID": "1", "DoctorID": "1", "AppointmentDate": "2024-05-01", "TimeSlot": "14:30",
	})
}

func TestPatientsPageCreateSearchAndDelete(t *testing.T) {
	c := newClinic(t)
	ctx := context.Background()
	notes := &recordingNotifier{}
	page := Patients(c, WithNotifier(notes))
	if err := page.Mount(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"Asha", "Ravi", "Meena"} {
		create(t, page, map[string]string{
			"Name": name, "Age": "30", "Gender": "Female",
			"ContactNumber": "9876543210", "Email": strings.ToLower(name) + "@example.com", "Address": "Pune",
		})
	}
	if notes.last() != "Patient added successfully!" {
		t.Errorf("expected add notification, got %q", notes.last())
	}

	rows := page.Rows("")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[2].Seq != 3 || rows[2].Record.Name != "Meena" {
		t.Errorf("expected Meena numbered 3, got %+v", rows[2])
	}

	found := page.Rows("EEN")
	if len(found) != 1 || found[0].Seq != 3 {
		t.Errorf("expected Meena with Seq 3, got %+v", found)
	}

	ok, err := page.Delete(ctx, 2, editor.ConfirmFunc(func(context.Context, editor.Prompt) (bool, error) {
		return true, nil
	}))
	if err != nil || !ok {
		t.Fatalf("expected delete to succeed, got %v, %v", ok, err)
	}
	rows = page.Rows("")
	if len(rows) != 2 || rows[1].Record.Name != "Meena" || rows[1].Seq != 2 {
		t.Errorf("expected renumbered rows after delete, got %+v", rows)
	}
	if notes.last() != "Deleted successfully." {
		t.Errorf("expected delete notification, got %q", notes.last())
	}
}

func TestEditUpdatesRecord(t *testing.T) {
	c := newClinic(t)
	seed(t, c)
	ctx := context.Background()

	page := Appointments(c)
	if err := page.Mount(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := page.Edit(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := page.Editor.Draft().TimeSlot; got != "14:30:00" {
		t.Errorf("expected the edit draft to carry 14:30:00, got %q", got)
	}
	fill(t, page, map[string]string{"Status": "Completed"})
	if err := page.Submit(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row, ok := page.List.Find(1)
	if !ok {
		t.Fatal("expected appointment 1 to be listed")
	}
	if row.Record.Status != clinic.AppointmentCompleted {
		t.Errorf("expected Completed, got %q", row.Record.Status)
	}
	if row.Record.AppointmentDate != "2024-05-01" || row.Record.TimeSlot != "14:30" {
		t.Errorf("expected normalized date and time, got %q %q", row.Record.AppointmentDate, row.Record.TimeSlot)
	}
	if page.List.Len() != 1 {
		t.Errorf("expected update not to add rows, got %d", page.List.Len())
	}
}

func TestPageRefusesIdentifierAssignment(t *testing.T) {
	c := newClinic(t)
	seed(t, c)
	ctx := context.Background()

	page := Patients(c)
	if err := page.Mount(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := page.Add(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := page.Set("PatientID", "1"); !errors.Is(err, editor.ErrNotEditable) {
		t.Fatalf("expected ErrNotEditable, got %v", err)
	}
	fill(t, page, map[string]string{
		"Name": "Ravi", "Age": "41", "Gender": "Male",
		"ContactNumber": "9876543211", "Email": "ravi@example.com", "Address": "Nashik",
	})
	if err := page.Submit(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.List.Len() != 2 {
		t.Fatalf("expected add to create a second patient, got %d rows", page.List.Len())
	}
	if row, _ := page.List.Find(1); row.Record.Name != "Asha" {
		t.Errorf("expected patient 1 untouched, got %q", row.Record.Name)
	}

	if err := page.Edit(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := page.Set("PatientID", "2"); !errors.Is(err, editor.ErrNotEditable) {
		t.Errorf("expected ErrNotEditable, got %v", err)
	}
	if id := page.Editor.Draft().PatientID; id == nil || *id != 1 {
		t.Errorf("expected edit draft to keep id 1, got %v", id)
	}
}

func TestAppointmentPrint(t *testing.T) {
	c := newClinic(t)
	seed(t, c)

	page := Appointments(c)
	if err := page.Mount(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, err := page.Print(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{
		"Patient Name": "Asha",
		"Doctor Name":  "Dr. Iyer",
		"Date":         "2024-05-01",
		"Time":         "14:30",
		"Status":       "Scheduled",
	}
	for _, r := range doc.Rows {
		if want[r.Label] != r.Value {
			t.Errorf("%s: expected %q, got %q", r.Label, want[r.Label], r.Value)
		}
	}
}

func TestBillingAutoFillsPatientAndPrints(t *testing.T) {
	c := newClinic(t)
	seed(t, c)
	ctx := context.Background()

	printed := time.Date(2024, 6, 9, 9, 0, 0, 0, time.UTC)
	page := Billing(c, WithClock(func() time.Time { return printed }))
	if err := page.Mount(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := page.Add(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := page.Select("AppointmentID", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	draft := page.Editor.Draft()
	if draft.PatientID == nil || *draft.PatientID != 1 {
		t.Fatalf("expected PatientID filled from the appointment, got %v", draft.PatientID)
	}
	if draft.PaymentStatus != clinic.PaymentPaid {
		t.Errorf("expected default Paid, got %q", draft.PaymentStatus)
	}

	fill(t, page, map[string]string{"Amount": "1500"})
	if err := page.Submit(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := page.Rows("")[0]
	if got := page.ReferenceLabel(row.Record, "PatientID"); got != "Asha" {
		t.Errorf("expected patient label Asha, got %q", got)
	}

	doc, err := page.Print(*row.Record.BillID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Date != "09/06/2024" {
		t.Errorf("expected 09/06/2024, got %q", doc.Date)
	}
	values := map[string]string{}
	for _, r := range doc.Rows {
		values[r.Label] = r.Value
	}
	if values["Patient"] != "Asha" || values["Appointment"] != "Appt #1" || values["Amount"] != "₹1500" {
		t.Errorf("unexpected receipt rows: %v", values)
	}
}

func TestPrescriptionAutoFillsPatientAndDoctor(t *testing.T) {
	c := newClinic(t)
	seed(t, c)
	ctx := context.Background()

	page := Prescriptions(c)
	if err := page.Mount(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := page.Add(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fill(t, page, map[string]string{
		"AppointmentID":   "1",
		"MedicineDetails": "Amoxicillin",
		"Dosage":          "500mg",
		"DateIssued":      "2024-05-02",
	})
	draft := page.Editor.Draft()
	if draft.PatientID == nil || draft.DoctorID == nil || *draft.PatientID != 1 || *draft.DoctorID != 1 {
		t.Fatalf("expected patient and doctor filled from the appointment, got %v %v", draft.PatientID, draft.DoctorID)
	}
	if err := page.Submit(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := page.Rows("")[0]
	if row.Record.DateIssued != "2024-05-02" {
		t.Errorf("expected date issued 2024-05-02, got %q", row.Record.DateIssued)
	}
	doc, err := page.Print(*row.Record.PrescriptionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Rows[0].Value != "Dr. Iyer" || doc.Rows[1].Value != "Asha" {
		t.Errorf("expected doctor and patient labels, got %q and %q", doc.Rows[0].Value, doc.Rows[1].Value)
	}
}

func TestSelectRejectsUnknownReference(t *testing.T) {
	c := newClinic(t)
	seed(t, c)

	page := MedicalRecords(c)
	if err := page.Mount(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = page.Add()
	if err := page.Set("PatientID", "42"); !errors.Is(err, ErrUnknownReference) {
		t.Errorf("expected ErrUnknownReference, got %v", err)
	}
	if err := page.Set("PatientID", "one"); err == nil {
		t.Error("expected an error for a non-numeric id")
	}
	if err := page.Select("Diagnosis", 1); err == nil {
		t.Error("expected an error selecting a non-reference field")
	}
}

func TestEditAndPrintUnknownRecord(t *testing.T) {
	c := newClinic(t)
	page := Doctors(c)
	if err := page.Mount(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := page.Edit(7); !errors.Is(err, ErrNoSuchRecord) {
		t.Errorf("expected ErrNoSuchRecord, got %v", err)
	}
	if page.Printable() {
		t.Error("expected doctors not to be printable")
	}
}

func TestMountFailsWhenLookupsFail(t *testing.T) {
	c, err := api.NewClient("http://127.0.0.1:1/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	page := Billing(c)
	err = page.Mount(context.Background())
	if !errors.Is(err, api.ErrTransport) {
		t.Fatalf("expected a transport error, got %v", err)
	}
	if page.List.Len() != 0 {
		t.Errorf("expected no rows, got %d", page.List.Len())
	}
}

func TestServerRejectionStaysInline(t *testing.T) {
	c := newClinic(t)
	ctx := context.Background()
	notes := &recordingNotifier{}
	page := Billing(c, WithNotifier(notes))
	if err := page.Mount(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Edit a bill that only exists locally: the backend refuses the update.
	err := page.Editor.Edit(clinic.Billing{
		BillID: clinic.ID(9), PatientID: clinic.ID(1), AppointmentID: clinic.ID(1),
		Amount: "10", PaymentStatus: clinic.PaymentUnpaid,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = page.Submit(ctx)
	var rejected *api.RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected a rejection, got %v", err)
	}
	if page.Editor.SubmitError() != "Bill not found" {
		t.Errorf("expected inline 'Bill not found', got %q", page.Editor.SubmitError())
	}
	if page.Editor.State() != editor.OpenEditing {
		t.Errorf("expected the editor to stay open, got %s", page.Editor.State())
	}
	if notes.last() != "Bill not found" {
		t.Errorf("expected failure notification, got %q", notes.last())
	}
}
