package clinic

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Schema configures the generic list and editor for one record type.
type Schema[R Record] struct {
	Kind Kind

	// Blank returns the draft used by "add". Nil means the zero value.
	Blank func() R

	// Normalize post-processes a record fetched by a list call.
	Normalize func(R) R

	// PrepareEdit adjusts a displayed row before it becomes an editing draft.
	PrepareEdit func(R) R

	// SearchText returns the text matched by name search. Nil disables search.
	SearchText func(R) string

	// References maps foreign-key fields to the kind they point at.
	References map[string]Kind
}

// New returns a blank draft.
func (s Schema[R]) New() R {
	if s.Blank != nil {
		return s.Blank()
	}
	var zero R
	return zero
}

// Normalized applies Normalize when set.
func (s Schema[R]) Normalized(r R) R {
	if s.Normalize != nil {
		return s.Normalize(r)
	}
	return r
}

// ForEdit applies PrepareEdit when set.
func (s Schema[R]) ForEdit(r R) R {
	if s.PrepareEdit != nil {
		return s.PrepareEdit(r)
	}
	return r
}

// Searchable reports whether the kind supports name search.
func (s Schema[R]) Searchable() bool {
	return s.SearchText != nil
}

// Dependencies lists the kinds whose lookups must be loaded before the kind's
// own list can be displayed or edited.
func (s Schema[R]) Dependencies() []Kind {
	var deps []Kind
	for _, k := range Kinds {
		for _, ref := range s.References {
			if ref == k {
				deps = append(deps, k)
				break
			}
		}
	}
	return deps
}

var PatientSchema = Schema[Patient]{
	Kind:       KindPatient,
	SearchText: func(p Patient) string { return p.Name },
}

var DoctorSchema = Schema[Doctor]{
	Kind:       KindDoctor,
	SearchText: func(d Doctor) string { return d.Name },
}

var AppointmentSchema = Schema[Appointment]{
	Kind:  KindAppointment,
	Blank: func() Appointment { return Appointment{Status: AppointmentScheduled} },
	Normalize: func(a Appointment) Appointment {
		a.AppointmentDate = DateOnly(a.AppointmentDate)
		a.TimeSlot = ClockFromTimestamp(a.TimeSlot)
		return a
	},
	PrepareEdit: func(a Appointment) Appointment {
		a.TimeSlot = ExpandClock(a.TimeSlot)
		a.PatientName, a.DoctorName = "", ""
		return a
	},
	References: map[string]Kind{
		"PatientID": KindPatient,
		"DoctorID":  KindDoctor,
	},
}

var BillingSchema = Schema[Billing]{
	Kind:  KindBilling,
	Blank: func() Billing { return Billing{PaymentStatus: PaymentPaid} },
	References: map[string]Kind{
		"PatientID":     KindPatient,
		"AppointmentID": KindAppointment,
	},
}

var PrescriptionSchema = Schema[Prescription]{
	Kind: KindPrescription,
	Normalize: func(p Prescription) Prescription {
		p.DateIssued = DateOnly(p.DateIssued)
		return p
	},
	References: map[string]Kind{
		"AppointmentID": KindAppointment,
		"DoctorID":      KindDoctor,
		"PatientID":     KindPatient,
	},
}

var MedicalRecordSchema = Schema[MedicalRecord]{
	Kind: KindMedicalRecord,
	Normalize: func(m MedicalRecord) MedicalRecord {
		m.Date = DateOnly(m.Date)
		return m
	},
	References: map[string]Kind{
		"PatientID": KindPatient,
	},
}

// DateOnly keeps the calendar date of an ISO 8601 date-time.
func DateOnly(s string) string {
	date, _, _ := strings.Cut(s, "T")
	return date
}

var clockPattern = regexp.MustCompile(`^(\d{2}):(\d{2})(?::\d{2})?$`)

// ClockFromTimestamp renders the UTC hour and minute of an RFC 3339 timestamp
// as HH:MM. A bare HH:MM[:SS] value is truncated to HH:MM; anything else is
// returned unchanged.
func ClockFromTimestamp(s string) string {
	if s == "" {
		return s
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t = t.UTC()
		return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
	}
	if m := clockPattern.FindStringSubmatch(s); m != nil {
		return m[1] + ":" + m[2]
	}
	return s
}

// ExpandClock turns HH:MM into HH:MM:00, the granularity time inputs expect.
func ExpandClock(s string) string {
	if len(s) == 5 && clockPattern.MatchString(s) {
		return s + ":00"
	}
	return s
}
