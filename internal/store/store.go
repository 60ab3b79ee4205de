// Package store persists the development API's records, in a gorm database or
// in memory.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mediassist/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Entity is satisfied by pointers to models with a numeric primary key.
type Entity[M any] interface {
	*M
	GetID() int64
	SetID(int64)
}

// Store is the collection of one model. List returns records in insertion
// order. Update and Delete of an unknown id fail with ErrNotFound.
type Store[M any] interface {
	List(ctx context.Context) ([]M, error)
	Get(ctx context.Context, id int64) (M, error)
	Create(ctx context.Context, rec *M) error
	Update(ctx context.Context, rec *M) error
	Delete(ctx context.Context, id int64) error
}

// UserStore holds operator accounts, unique by email.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Set groups the stores the API serves.
type Set struct {
	Patients       Store[models.Patient]
	Doctors        Store[models.Doctor]
	Appointments   Store[models.Appointment]
	Billing        Store[models.Billing]
	Prescriptions  Store[models.Prescription]
	MedicalRecords Store[models.MedicalRecord]
	Users          UserStore
}

func NewMemorySet() *Set {
	return &Set{
		Patients:       NewMemoryStore[models.Patient](),
		Doctors:        NewMemoryStore[models.Doctor](),
		Appointments:   NewMemoryStore[models.Appointment](),
		Billing:        NewMemoryStore[models.Billing](),
		Prescriptions:  NewMemoryStore[models.Prescription](),
		MedicalRecords: NewMemoryStore[models.MedicalRecord](),
		Users:          NewMemoryUserStore(),
	}
}

func NewGormSet(db *gorm.DB) *Set {
	return &Set{
		Patients:       NewGormStore[models.Patient](db),
		Doctors:        NewGormStore[models.Doctor](db),
		Appointments:   NewGormStore[models.Appointment](db),
		Billing:        NewGormStore[models.Billing](db),
		Prescriptions:  NewGormStore[models.Prescription](db),
		MedicalRecords: NewGormStore[models.MedicalRecord](db),
		Users:          NewGormUserStore(db),
	}
}
