// Package desk composes the per-kind pages: reference lookups, the synchronized
// list and the record editor, wired to one Resource Client.
package desk

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"mediassist/internal/api"
	"mediassist/internal/clinic"
	"mediassist/internal/editor"
	"mediassist/internal/listsync"
	"mediassist/internal/lookup"
	"mediassist/internal/printout"
)

var (
	// ErrUnknownReference is returned when a foreign key is not among the
	// options offered by the page's lookups.
	ErrUnknownReference = errors.New("reference not offered by lookups")
	ErrNoSuchRecord     = errors.New("no such record")
	ErrNotPrintable     = errors.New("kind has no printable document")
)

type Option func(*options)

type options struct {
	log      *zap.Logger
	notifier editor.Notifier
	now      func() time.Time
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

func WithNotifier(n editor.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithClock sets the time source used for print dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Page is one screen of the desk. Each page keeps its own collections and
// caches.
type Page[R clinic.Record] struct {
	Schema  clinic.Schema[R]
	Lookups *lookup.Cache
	List    *listsync.List[R]
	Editor  *editor.Editor[R]

	log *zap.Logger
	now func() time.Time
}

func NewPage[R clinic.Record](schema clinic.Schema[R], caller api.Caller, opts ...Option) *Page[R] {
	o := options{log: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.With(zap.String("page", string(schema.Kind)))

	list := listsync.New(schema, caller, log)
	edOpts := []editor.Option{editor.WithLogger(log)}
	if o.notifier != nil {
		edOpts = append(edOpts, editor.WithNotifier(o.notifier))
	}
	return &Page[R]{
		Schema:  schema,
		Lookups: lookup.NewCache(caller, log),
		List:    list,
		Editor:  editor.New(schema, caller, list, edOpts...),
		log:     log,
		now:     o.now,
	}
}

// Mount loads the page's lookups and then fetches its list. A lookup failure
// aborts the mount before the list is fetched.
func (p *Page[R]) Mount(ctx context.Context) error {
	if deps := p.Schema.Dependencies(); len(deps) > 0 {
		if err := p.Lookups.Load(ctx, deps...); err != nil {
			return fmt.Errorf("mounting %s page: %w", p.Schema.Kind, err)
		}
	}
	if err := p.List.Refresh(ctx); err != nil {
		return fmt.Errorf("mounting %s page: %w", p.Schema.Kind, err)
	}
	return nil
}

// Rows returns the displayed rows, narrowed by term for searchable kinds.
func (p *Page[R]) Rows(term string) []listsync.Row[R] {
	return p.List.Filter(term)
}

func (p *Page[R]) Add() error {
	return p.Editor.Add()
}

// Edit opens the displayed record with the given identifier.
func (p *Page[R]) Edit(id int64) error {
	row, ok := p.List.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s %d", ErrNoSuchRecord, p.Schema.Kind, id)
	}
	return p.Editor.Edit(row.Record)
}

// Set assigns one form field. Reference fields go through Select.
func (p *Page[R]) Set(field, raw string) error {
	if _, ok := p.Schema.References[field]; ok {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return p.Editor.Set(field, "")
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %q is not an identifier", field, raw)
		}
		return p.Select(field, id)
	}
	return p.Editor.Set(field, raw)
}

// Select sets a foreign key to one of the ids offered by the lookups.
// Choosing an appointment also fills in the draft's patient and doctor from
// that appointment when the record has those fields.
func (p *Page[R]) Select(field string, id int64) error {
	kind, ok := p.Schema.References[field]
	if !ok {
		return fmt.Errorf("%s is not a reference field of %s", field, p.Schema.Kind)
	}
	opt, ok := p.Lookups.Find(kind, id)
	if !ok {
		return fmt.Errorf("%w: %s %d", ErrUnknownReference, kind, id)
	}

	fields := []string{field}
	values := map[string]int64{field: id}
	if kind == clinic.KindAppointment {
		var zero R
		if opt.PatientID != nil && clinic.HasField(zero, "PatientID") {
			fields = append(fields, "PatientID")
			values["PatientID"] = *opt.PatientID
		}
		if opt.DoctorID != nil && clinic.HasField(zero, "DoctorID") {
			fields = append(fields, "DoctorID")
			values["DoctorID"] = *opt.DoctorID
		}
	}

	return p.Editor.Update(func(draft *R) error {
		for _, f := range fields {
			if err := clinic.Assign(draft, f, strconv.FormatInt(values[f], 10)); err != nil {
				return err
			}
		}
		return nil
	}, fields...)
}

func (p *Page[R]) Submit(ctx context.Context) error {
	return p.Editor.Submit(ctx)
}

func (p *Page[R]) Delete(ctx context.Context, id int64, confirm editor.Confirmer) (bool, error) {
	return p.Editor.Delete(ctx, id, confirm)
}

// ReferenceLabel resolves rec's foreign key field to its lookup label, or ""
// when the id is unset or not offered.
func (p *Page[R]) ReferenceLabel(rec R, field string) string {
	kind, ok := p.Schema.References[field]
	if !ok {
		return ""
	}
	return p.Lookups.Label(kind, clinic.Reference(rec, field), "")
}

// Print projects the displayed record with the given identifier onto its
// printable document.
func (p *Page[R]) Print(id int64) (printout.Document, error) {
	row, ok := p.List.Find(id)
	if !ok {
		return printout.Document{}, fmt.Errorf("%w: %s %d", ErrNoSuchRecord, p.Schema.Kind, id)
	}
	switch rec := any(row.Record).(type) {
	case clinic.Appointment:
		return printout.Appointment(rec), nil
	case clinic.Billing:
		return printout.Bill(rec, p.Lookups.Label(clinic.KindPatient, rec.PatientID, ""), p.now()), nil
	case clinic.Prescription:
		return printout.Prescription(rec,
			p.Lookups.Label(clinic.KindDoctor, rec.DoctorID, ""),
			p.Lookups.Label(clinic.KindPatient, rec.PatientID, ""),
		), nil
	}
	return printout.Document{}, fmt.Errorf("%w: %s", ErrNotPrintable, p.Schema.Kind)
}

// Printable reports whether the page's kind has a printable document.
func (p *Page[R]) Printable() bool {
	switch p.Schema.Kind {
	case clinic.KindAppointment, clinic.KindBilling, clinic.KindPrescription:
		return true
	}
	return false
}

func Patients(c api.Caller, opts ...Option) *Page[clinic.Patient] {
	return NewPage(clinic.PatientSchema, c, opts...)
}

func Doctors(c api.Caller, opts ...Option) *Page[clinic.Doctor] {
	return NewPage(clinic.DoctorSchema, c, opts...)
}

func Appointments(c api.Caller, opts ...Option) *Page[clinic.Appointment] {
	return NewPage(clinic.AppointmentSchema, c, opts...)
}

func Billing(c api.Caller, opts ...Option) *Page[clinic.Billing] {
	return NewPage(clinic.BillingSchema, c, opts...)
}

func Prescriptions(c api.Caller, opts ...Option) *Page[clinic.Prescription] {
	return NewPage(clinic.PrescriptionSchema, c, opts...)
}

func MedicalRecords(c api.Caller, opts ...Option) *Page[clinic.MedicalRecord] {
	return NewPage(clinic.MedicalRecordSchema, c, opts...)
}
