package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediassist/internal/clinic"
	"mediassist/internal/models"
	"mediassist/internal/store"
)

// NewAppointmentHandler serves appointments, listing each with the names of
// its patient and doctor.
func NewAppointmentHandler(s *store.Set, log *zap.Logger) *DetailsHandler[models.Appointment, *models.Appointment] {
	h := NewDetailsHandler[models.Appointment](clinic.KindAppointment, s.Appointments, log)
	h.View = appointmentView(s)
	return h
}

func appointmentView(s *store.Set) ListView[models.Appointment] {
	return func(c *gin.Context, rows []models.Appointment) (any, error) {
		ctx := c.Request.Context()
		patients, err := s.Patients.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading patients: %w", err)
		}
		doctors, err := s.Doctors.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading doctors: %w", err)
		}

		patientNames := make(map[int64]string, len(patients))
		for _, p := range patients {
			patientNames[p.PatientID] = p.Name
		}
		doctorNames := make(map[int64]string, len(doctors))
		for _, d := range doctors {
			doctorNames[d.DoctorID] = d.Name
		}

		views := make([]models.AppointmentView, 0, len(rows))
		for _, a := range rows {
			v := models.AppointmentView{Appointment: a}
			if a.PatientID != nil {
				v.PatientName = patientNames[*a.PatientID]
			}
			if a.DoctorID != nil {
				v.DoctorName = doctorNames[*a.DoctorID]
			}
			views = append(views, v)
		}
		return views, nil
	}
}
