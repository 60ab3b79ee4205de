package listsync

import (
	"context"
	"errors"
	"testing"

	"mediassist/internal/api"
	"mediassist/internal/clinic"
)

// mockCaller returns the next queued response for each list call.
type mockCaller struct {
	responses []string
	errs      []error
	calls     int
}

func (m *mockCaller) Call(_ context.Context, _ clinic.Kind, _ clinic.Operation, _ any) (*api.Result, error) {
	i := m.calls
	m.calls++
	if i < len(m.errs) && m.errs[i] != nil {
		return nil, m.errs[i]
	}
	return &api.Result{Success: true, Data: []byte(m.responses[i])}, nil
}

func TestRefreshNumbersRowsAndNormalizes(t *testing.T) {
	m := &mockCaller{responses: []string{`[
		{"AppointmentID":3,"PatientID":1,"DoctorID":2,"AppointmentDate":"2024-05-01T00:00:00Z","TimeSlot":"2024-05-01T14:30:00Z","Status":"Scheduled"},
		{"AppointmentID":8,"PatientID":1,"DoctorID":2,"AppointmentDate":"2024-05-02T00:00:00Z","TimeSlot":"1970-01-01T09:00:00Z","Status":"Completed"}
	]`}}
	l := New(clinic.AppointmentSchema, m, nil)

	if err := l.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := l.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Seq != 1 || rows[1].Seq != 2 {
		t.Errorf("expected sequence 1,2, got %d,%d", rows[0].Seq, rows[1].Seq)
	}
	if rows[0].Record.AppointmentDate != "2024-05-01" || rows[0].Record.TimeSlot != "14:30" {
		t.Errorf("unexpected normalization %+v", rows[0].Record)
	}
	if rows[1].Record.TimeSlot != "09:00" {
		t.Errorf("expected 09:00, got %q", rows[1].Record.TimeSlot)
	}
}

func TestRefreshRecomputesSequence(t *testing.T) {
	m := &mockCaller{responses: []string{
		`[{"PatientID":1,"Name":"A"},{"PatientID":2,"Name":"B"},{"PatientID":3,"Name":"C"}]`,
		`[{"PatientID":1,"Name":"A"},{"PatientID":3,"Name":"C"}]`,
	}}
	l := New(clinic.PatientSchema, m, nil)
	_ = l.Refresh(context.Background())
	_ = l.Refresh(context.Background())

	row, ok := l.Find(3)
	if !ok {
		t.Fatal("expected patient 3")
	}
	if row.Seq != 2 {
		t.Errorf("expected Seq 2 after removal, got %d", row.Seq)
	}
	if _, ok := l.Find(2); ok {
		t.Error("expected patient 2 gone")
	}
}

func TestRefreshFailureKeepsPreviousRows(t *testing.T) {
	m := &mockCaller{
		responses: []string{`[{"DoctorID":1,"Name":"Dr. Iyer"}]`, ``},
		errs:      []error{nil, errors.New("timeout")},
	}
	l := New(clinic.DoctorSchema, m, nil)
	if err := l.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if l.Len() != 1 {
		t.Errorf("expected previous row kept, got %d rows", l.Len())
	}
}

func TestRowsIsSnapshot(t *testing.T) {
	m := &mockCaller{responses: []string{`[{"PatientID":1,"Name":"A"}]`}}
	l := New(clinic.PatientSchema, m, nil)
	_ = l.Refresh(context.Background())

	rows := l.Rows()
	rows[0].Record.Name = "changed"
	if got, _ := l.Find(1); got.Record.Name != "A" {
		t.Error("expected list unaffected by snapshot edits")
	}
}

func TestFilterByName(t *testing.T) {
	m := &mockCaller{responses: []string{`[
		{"PatientID":1,"Name":"Asha Rao"},
		{"PatientID":2,"Name":"Ravi Kumar"},
		{"PatientID":3,"Name":"Meera Rao"}]`}}
	l := New(clinic.PatientSchema, m, nil)
	_ = l.Refresh(context.Background())

	got := l.Filter("  rao ")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[1].Seq != 3 {
		t.Errorf("expected match to keep Seq 3, got %d", got[1].Seq)
	}
	if len(l.Filter("")) != 3 {
		t.Error("expected blank term to return every row")
	}
	if len(l.Filter("zzz")) != 0 {
		t.Error("expected no matches")
	}
}

func TestFilterIgnoredWithoutSearch(t *testing.T) {
	m := &mockCaller{responses: []string{`[{"BillID":1,"Amount":10},{"BillID":2,"Amount":20}]`}}
	l := New(clinic.BillingSchema, m, nil)
	_ = l.Refresh(context.Background())
	if len(l.Filter("anything")) != 2 {
		t.Error("expected kinds without search to ignore the term")
	}
}
