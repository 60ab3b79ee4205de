// Package printout renders the printable appointment, bill and prescription
// documents as standalone HTML pages.
package printout

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"mediassist/internal/clinic"
)

// Row is one label/value line of a printed table.
type Row struct {
	Label string
	Value string
}

// Document is the projection of a record onto a printable page.
type Document struct {
	Title   string
	Heading string
	Date    string
	Rows    []Row
	Footer  string
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
      body { font-family: sans-serif; padding: 20px; }
      h1 { color: #1d4ed8; }
      table { width: 100%; border-collapse: collapse; margin-top: 20px; }
      th, td { padding: 8px; border: 1px solid #ccc; text-align: left; }
    </style>
  </head>
  <body>
    <h1>{{.Heading}}</h1>
{{- if .Date}}
    <p><strong>Date:</strong> {{.Date}}</p>
{{- end}}
    <table>
{{- range .Rows}}
      <tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>
{{- end}}
    </table>
{{- if .Footer}}
    <p style="margin-top: 40px;">{{.Footer}}</p>
{{- end}}
  </body>
</html>
`))

// Render writes doc as HTML. Values are escaped.
func Render(w io.Writer, doc Document) error {
	if err := page.Execute(w, doc); err != nil {
		return fmt.Errorf("rendering %s: %w", doc.Title, err)
	}
	return nil
}

// Appointment projects an appointment row. Names come from the row's display
// fields.
func Appointment(a clinic.Appointment) Document {
	return Document{
		Title:   "Appointment Details",
		Heading: "Appointment Details",
		Rows: []Row{
			{"Patient Name", a.PatientName},
			{"Doctor Name", a.DoctorName},
			{"Date", a.AppointmentDate},
			{"Time", a.TimeSlot},
			{"Status", string(a.Status)},
		},
	}
}

// Bill projects a bill. patient is the resolved patient label; an empty label
// prints as Unknown.
func Bill(b clinic.Billing, patient string, printed time.Time) Document {
	if patient == "" {
		patient = "Unknown"
	}
	appt := ""
	if b.AppointmentID != nil {
		appt = fmt.Sprintf("Appt #%d", *b.AppointmentID)
	}
	return Document{
		Title:   "Bill Receipt",
		Heading: "Billing Receipt",
		Date:    printed.Format("02/01/2006"),
		Rows: []Row{
			{"Patient", patient},
			{"Appointment", appt},
			{"Amount", "₹" + string(b.Amount)},
			{"Payment Status", string(b.PaymentStatus)},
		},
		Footer: "Thank you for visiting!",
	}
}

// Prescription projects a prescription with resolved doctor and patient labels.
func Prescription(p clinic.Prescription, doctor, patient string) Document {
	return Document{
		Title:   "Prescription",
		Heading: "Prescription Details",
		Rows: []Row{
			{"Doctor", doctor},
			{"Patient", patient},
			{"Medicine", p.MedicineDetails},
			{"Dosage", p.Dosage},
			{"Instructions", p.Instructions},
			{"Date Issued", p.DateIssued},
		},
	}
}
