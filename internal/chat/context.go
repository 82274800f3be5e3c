package chat

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"clinical-chat-be/internal/entity"
)

// Rendering caps. The assembled context never grows past these regardless
// of how many records exist upstream, which keeps the generation input
// bounded.
const (
	maxAppointments  = 10
	maxDiagnoses     = 15
	maxPrescriptions = 15
	maxChunks        = 5
)

const placeholderNotAvailable = "No disponible"

// BuildPatientContext renders the patient record, the clinical record
// bundle and the similarity chunks into a single bounded context block.
// Pure and deterministic: missing optional fields fall back to placeholder
// strings, never to an error. Only structurally invalid input fails.
// Section order is fixed: header, appointments, diagnoses, prescriptions,
// similarity chunks.
func BuildPatientContext(patient *entity.Patient, records *entity.ClinicalRecords, chunks []entity.ScoredChunk) (string, error) {
	if patient == nil {
		return "", errors.New("patient is required")
	}
	if records == nil {
		records = &entity.ClinicalRecords{}
	}

	var b strings.Builder

	firstName := fallback(patient.FirstName, "Nombre")
	firstSurname := fallback(patient.FirstSurname, "Apellido")
	documentNumber := fallback(patient.DocumentNumber, placeholderNotAvailable)
	gender := fallbackPtr(patient.Gender, "No registrado")

	b.WriteString("\n### INFORMACIÓN BÁSICA DEL PACIENTE\n")
	b.WriteString(fmt.Sprintf("Nombre: %s %s\n", firstName, firstSurname))
	b.WriteString(fmt.Sprintf("Edad: %s\n", ageLabel(patient.BirthDate, time.Now())))
	b.WriteString(fmt.Sprintf("Documento: %s\n", documentNumber))
	b.WriteString(fmt.Sprintf("Género: %s\n\n", gender))

	if len(records.Appointments) > 0 {
		b.WriteString("### CITAS MÉDICAS RECIENTES\n")
		for _, apt := range truncateAppointments(records.Appointments, maxAppointments) {
			b.WriteString(fmt.Sprintf("**Cita %s**\n", dateLabel(apt.AppointmentDate, "Fecha no disponible")))
			b.WriteString(fmt.Sprintf("- Estado: %s\n", fallbackPtr(apt.Status, placeholderNotAvailable)))
			b.WriteString(fmt.Sprintf("- Motivo: %s\n", fallbackPtr(apt.Reason, "No especificado")))
			if apt.DoctorName != nil && *apt.DoctorName != "" {
				b.WriteString(fmt.Sprintf("- Doctor: %s\n", *apt.DoctorName))
			}
			b.WriteString("\n")
		}
	}

	if len(records.Diagnoses) > 0 {
		b.WriteString("### DIAGNÓSTICOS\n")
		for _, diag := range truncateDiagnoses(records.Diagnoses, maxDiagnoses) {
			b.WriteString(fmt.Sprintf("**%s** (ICD-10: %s)\n",
				fallbackPtr(diag.Description, "Diagnóstico sin descripción"),
				fallbackPtr(diag.IcdCode, "Sin código")))
		}
	}

	if len(records.Prescriptions) > 0 {
		b.WriteString("\n### MEDICAMENTOS\n")
		for _, presc := range truncatePrescriptions(records.Prescriptions, maxPrescriptions) {
			b.WriteString(fmt.Sprintf("- %s", fallbackPtr(presc.MedicationName, "Medicamento sin nombre")))
			dosage := valueOrEmpty(presc.Dosage)
			frequency := valueOrEmpty(presc.Frequency)
			if dosage != "" || frequency != "" {
				b.WriteString(fmt.Sprintf(" (%s %s)", dosage, frequency))
			}
			b.WriteString("\n")
		}
	}

	if len(chunks) > 0 {
		b.WriteString("\n### INFORMACIÓN ADICIONAL RELEVANTE\n")
		rendered := chunks
		if len(rendered) > maxChunks {
			rendered = rendered[:maxChunks]
		}
		for _, chunk := range rendered {
			text := "Texto no disponible"
			if chunk.Chunk != nil && chunk.Chunk.ChunkText != "" {
				text = chunk.Chunk.ChunkText
			}
			b.WriteString(fmt.Sprintf("[Relevancia: %.2f] %s\n\n", chunk.Score, text))
		}
	}

	return b.String(), nil
}

// ageLabel computes the age in full elapsed years: the year difference is
// reduced by one when today's (month, day) precedes the birth (month, day).
// An absent birth date renders as a placeholder instead of failing.
func ageLabel(birthDate *time.Time, now time.Time) string {
	if birthDate == nil {
		return placeholderNotAvailable
	}
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	if age < 0 {
		return placeholderNotAvailable
	}
	return fmt.Sprintf("%d", age)
}

func dateLabel(t *time.Time, placeholder string) string {
	if t == nil {
		return placeholder
	}
	return t.Format("2006-01-02")
}

func fallback(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

func fallbackPtr(value *string, placeholder string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return placeholder
	}
	return *value
}

func valueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func truncateAppointments(items []entity.Appointment, max int) []entity.Appointment {
	if len(items) > max {
		return items[:max]
	}
	return items
}

func truncateDiagnoses(items []entity.Diagnosis, max int) []entity.Diagnosis {
	if len(items) > max {
		return items[:max]
	}
	return items
}

func truncatePrescriptions(items []entity.Prescription, max int) []entity.Prescription {
	if len(items) > max {
		return items[:max]
	}
	return items
}
