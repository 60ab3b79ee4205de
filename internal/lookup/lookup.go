// Package lookup is the per-page reference data cache: id to label tables for
// the kinds a page's foreign keys point at.
package lookup

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mediassist/internal/api"
	"mediassist/internal/clinic"
)

// Option is one selectable reference. Appointment options also carry the
// appointment's patient and doctor so dependent fields can be filled in.
type Option struct {
	ID        int64
	Label     string
	PatientID *int64
	DoctorID  *int64
}

// Cache is loaded once and never refreshes on its own.
type Cache struct {
	caller api.Caller
	log    *zap.Logger

	mu     sync.RWMutex
	tables map[clinic.Kind][]Option
}

func NewCache(caller api.Caller, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{caller: caller, log: log, tables: map[clinic.Kind][]Option{}}
}

// Load fetches every listed kind concurrently and installs the tables only if
// all of them succeed.
func (c *Cache) Load(ctx context.Context, kinds ...clinic.Kind) error {
	results := make([][]Option, len(kinds))

	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			opts, err := c.fetch(ctx, kind)
			if err != nil {
				return fmt.Errorf("loading %s lookup: %w", kind, err)
			}
			results[i] = opts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.log.Error("lookup load failed", zap.Error(err))
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, kind := range kinds {
		c.tables[kind] = results[i]
	}
	c.log.Debug("lookups loaded", zap.Int("kinds", len(kinds)))
	return nil
}

func (c *Cache) fetch(ctx context.Context, kind clinic.Kind) ([]Option, error) {
	switch kind {
	case clinic.KindPatient:
		return project(ctx, c.caller, func(p clinic.Patient) Option {
			return Option{Label: p.Name}
		})
	case clinic.KindDoctor:
		return project(ctx, c.caller, func(d clinic.Doctor) Option {
			return Option{Label: d.Name}
		})
	case clinic.KindAppointment:
		return project(ctx, c.caller, func(a clinic.Appointment) Option {
			return Option{
				Label:     fmt.Sprintf("Appt #%d - %s", *a.AppointmentID, a.PatientName),
				PatientID: a.PatientID,
				DoctorID:  a.DoctorID,
			}
		})
	case clinic.KindBilling:
		return project(ctx, c.caller, func(b clinic.Billing) Option {
			return Option{Label: fmt.Sprintf("Bill #%d", *b.BillID), PatientID: b.PatientID}
		})
	case clinic.KindPrescription:
		return project(ctx, c.caller, func(p clinic.Prescription) Option {
			return Option{
				Label:     fmt.Sprintf("Prescription #%d", *p.PrescriptionID),
				PatientID: p.PatientID,
				DoctorID:  p.DoctorID,
			}
		})
	case clinic.KindMedicalRecord:
		return project(ctx, c.caller, func(m clinic.MedicalRecord) Option {
			return Option{Label: fmt.Sprintf("Record #%d", *m.RecordID), PatientID: m.PatientID}
		})
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}

// project lists R and maps each stored record to an option. Records without
// an identifier cannot be referenced and are skipped.
func project[R clinic.Record](ctx context.Context, caller api.Caller, label func(R) Option) ([]Option, error) {
	records, err := api.List[R](ctx, caller)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(records))
	for _, r := range records {
		id := r.Identifier()
		if id == nil {
			continue
		}
		opt := label(r)
		opt.ID = *id
		opts = append(opts, opt)
	}
	return opts, nil
}

// Loaded reports whether kind's table has been installed.
func (c *Cache) Loaded(kind clinic.Kind) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.tables[kind]
	return ok
}

// Options returns a copy of kind's table in backend order.
func (c *Cache) Options(kind clinic.Kind) []Option {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Option(nil), c.tables[kind]...)
}

func (c *Cache) Find(kind clinic.Kind, id int64) (Option, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, o := range c.tables[kind] {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

func (c *Cache) Contains(kind clinic.Kind, id int64) bool {
	_, ok := c.Find(kind, id)
	return ok
}

// Label resolves id to its label, or fallback when id is nil or unknown.
func (c *Cache) Label(kind clinic.Kind, id *int64, fallback string) string {
	if id == nil {
		return fallback
	}
	if o, ok := c.Find(kind, *id); ok {
		return o.Label
	}
	return fallback
}
