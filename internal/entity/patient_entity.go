package entity

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	Id             uuid.UUID
	FirstName      string
	FirstSurname   string
	SecondSurname  *string
	DocumentTypeId int
	DocumentNumber string
	BirthDate      *time.Time
	Gender         *string
}

// FullName joins the name parts, including the second surname when present.
func (p *Patient) FullName() string {
	name := p.FirstName + " " + p.FirstSurname
	if p.SecondSurname != nil && *p.SecondSurname != "" {
		name += " " + *p.SecondSurname
	}
	return name
}

type Appointment struct {
	Id              uuid.UUID
	AppointmentDate *time.Time
	Status          *string
	Reason          *string
	DoctorName      *string
}

type Diagnosis struct {
	Id            uuid.UUID
	Description   *string
	IcdCode       *string
	DiagnosisDate *time.Time
}

type Prescription struct {
	Id             uuid.UUID
	MedicationName *string
	Dosage         *string
	Frequency      *string
}

type MedicalRecord struct {
	Id          uuid.UUID
	RecordType  *string
	Description *string
	RecordDate  *time.Time
}

// ClinicalRecords bundles every record collection fetched for one patient.
type ClinicalRecords struct {
	Appointments   []Appointment
	Diagnoses      []Diagnosis
	Prescriptions  []Prescription
	MedicalRecords []MedicalRecord
}

// TotalCount is the number of structured records across all four collections.
func (r *ClinicalRecords) TotalCount() int {
	if r == nil {
		return 0
	}
	return len(r.Appointments) + len(r.Diagnoses) + len(r.Prescriptions) + len(r.MedicalRecords)
}
