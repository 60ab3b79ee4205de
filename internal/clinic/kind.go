// Package clinic defines the resource kinds the desk manages, their typed
// records, and the per-kind schemas that configure the generic list and editor.
package clinic

import (
	"fmt"
	"strings"
)

// Kind identifies a clinic resource collection.
type Kind string

const (
	KindPatient       Kind = "Patient"
	KindDoctor        Kind = "Doctor"
	KindAppointment   Kind = "Appointment"
	KindBilling       Kind = "Billing"
	KindPrescription  Kind = "Prescription"
	KindMedicalRecord Kind = "MedicalRecord"
)

// Kinds lists every resource kind in sidebar order.
var Kinds = []Kind{
	KindPatient,
	KindDoctor,
	KindAppointment,
	KindPrescription,
	KindMedicalRecord,
	KindBilling,
}

type kindInfo struct {
	idField string
	noun    string
}

var kindTable = map[Kind]kindInfo{
	KindPatient:       {idField: "PatientID", noun: "Patient"},
	KindDoctor:        {idField: "DoctorID", noun: "Doctor"},
	KindAppointment:   {idField: "AppointmentID", noun: "Appointment"},
	KindBilling:       {idField: "BillID", noun: "Bill"},
	KindPrescription:  {idField: "PrescriptionID", noun: "Prescription"},
	KindMedicalRecord: {idField: "RecordID", noun: "Medical record"},
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	_, ok := kindTable[k]
	return ok
}

// Endpoint is the path of the kind's RPC endpoint relative to the API base URL.
func (k Kind) Endpoint() string {
	return string(k) + "Details"
}

// IDField is the wire name of the kind's identifier.
func (k Kind) IDField() string {
	return kindTable[k].idField
}

// Noun is the human-readable singular name used in prompts and notifications.
func (k Kind) Noun() string {
	if info, ok := kindTable[k]; ok {
		return info.noun
	}
	return string(k)
}

// ParseKind resolves a kind from its name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	for k := range kindTable {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown resource kind %q", s)
}
