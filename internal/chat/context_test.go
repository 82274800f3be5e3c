package chat

import (
	"strings"
	"testing"
	"time"

	"clinical-chat-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestAgeLabel(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		birthDate *time.Time
		want      string
	}{
		{
			name:      "nil birth date",
			birthDate: nil,
			want:      "No disponible",
		},
		{
			name:      "birthday already passed this year",
			birthDate: timePtr(time.Date(1990, time.January, 10, 0, 0, 0, 0, time.UTC)),
			want:      "35",
		},
		{
			name:      "birthday is today",
			birthDate: timePtr(time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)),
			want:      "35",
		},
		{
			name:      "birthday is tomorrow",
			birthDate: timePtr(time.Date(1990, time.June, 16, 0, 0, 0, 0, time.UTC)),
			want:      "34",
		},
		{
			name:      "born later this month",
			birthDate: timePtr(time.Date(2000, time.June, 30, 0, 0, 0, 0, time.UTC)),
			want:      "24",
		},
		{
			name:      "birth date in the future",
			birthDate: timePtr(time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)),
			want:      "No disponible",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ageLabel(tt.birthDate, now))
		})
	}
}

func TestDocumentTypeLabel(t *testing.T) {
	tests := []struct {
		name string
		id   int
		want string
	}{
		{name: "citizen id", id: 1, want: "CC"},
		{name: "foreigner id", id: 2, want: "CE"},
		{name: "minor id", id: 3, want: "TI"},
		{name: "passport", id: 4, want: "PA"},
		{name: "unknown falls back", id: 99, want: "CC"},
		{name: "zero falls back", id: 0, want: "CC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DocumentTypeLabel(tt.id))
		})
	}
}

func TestBuildPatientContextRequiresPatient(t *testing.T) {
	_, err := BuildPatientContext(nil, &entity.ClinicalRecords{}, nil)
	assert.Error(t, err)
}

func TestBuildPatientContextMinimalPatient(t *testing.T) {
	patient := &entity.Patient{
		FirstName:      "Ana",
		FirstSurname:   "García",
		DocumentNumber: "12345678",
	}

	out, err := BuildPatientContext(patient, nil, nil)
	require.NoError(t, err)

	assert.Contains(t, out, "### INFORMACIÓN BÁSICA DEL PACIENTE")
	assert.Contains(t, out, "Nombre: Ana García")
	assert.Contains(t, out, "Edad: No disponible")
	assert.Contains(t, out, "Documento: 12345678")
	assert.Contains(t, out, "Género: No registrado")

	// No optional sections without data.
	assert.NotContains(t, out, "### CITAS MÉDICAS RECIENTES")
	assert.NotContains(t, out, "### DIAGNÓSTICOS")
	assert.NotContains(t, out, "### MEDICAMENTOS")
	assert.NotContains(t, out, "### INFORMACIÓN ADICIONAL RELEVANTE")
}

func TestBuildPatientContextRendersSectionsInOrder(t *testing.T) {
	patient := &entity.Patient{
		FirstName:      "Luis",
		FirstSurname:   "Pérez",
		DocumentNumber: "900100",
		Gender:         strPtr("M"),
	}
	records := &entity.ClinicalRecords{
		Appointments: []entity.Appointment{
			{
				AppointmentDate: timePtr(time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)),
				Status:          strPtr("completada"),
				Reason:          strPtr("Control"),
				DoctorName:      strPtr("Dra. Ruiz"),
			},
		},
		Diagnoses: []entity.Diagnosis{
			{Description: strPtr("Hipertensión"), IcdCode: strPtr("I10")},
		},
		Prescriptions: []entity.Prescription{
			{MedicationName: strPtr("Losartán"), Dosage: strPtr("50mg"), Frequency: strPtr("cada 12h")},
		},
	}
	chunks := []entity.ScoredChunk{
		{Chunk: &entity.RecordChunk{ChunkText: "Paciente refiere cefalea ocasional."}, Score: 0.91},
	}

	out, err := BuildPatientContext(patient, records, chunks)
	require.NoError(t, err)

	assert.Contains(t, out, "**Cita 2024-03-03**")
	assert.Contains(t, out, "- Estado: completada")
	assert.Contains(t, out, "- Motivo: Control")
	assert.Contains(t, out, "- Doctor: Dra. Ruiz")
	assert.Contains(t, out, "**Hipertensión** (ICD-10: I10)")
	assert.Contains(t, out, "- Losartán (50mg cada 12h)")
	assert.Contains(t, out, "[Relevancia: 0.91] Paciente refiere cefalea ocasional.")

	basic := strings.Index(out, "### INFORMACIÓN BÁSICA DEL PACIENTE")
	appointments := strings.Index(out, "### CITAS MÉDICAS RECIENTES")
	diagnoses := strings.Index(out, "### DIAGNÓSTICOS")
	medications := strings.Index(out, "### MEDICAMENTOS")
	extra := strings.Index(out, "### INFORMACIÓN ADICIONAL RELEVANTE")
	assert.True(t, basic < appointments && appointments < diagnoses && diagnoses < medications && medications < extra)
}

func TestBuildPatientContextFallbacks(t *testing.T) {
	patient := &entity.Patient{FirstName: "Ana", FirstSurname: "García"}
	records := &entity.ClinicalRecords{
		Appointments:  []entity.Appointment{{}},
		Diagnoses:     []entity.Diagnosis{{}},
		Prescriptions: []entity.Prescription{{}},
	}
	chunks := []entity.ScoredChunk{{Chunk: nil, Score: 0.5}}

	out, err := BuildPatientContext(patient, records, chunks)
	require.NoError(t, err)

	assert.Contains(t, out, "**Cita Fecha no disponible**")
	assert.Contains(t, out, "- Estado: No disponible")
	assert.Contains(t, out, "- Motivo: No especificado")
	assert.NotContains(t, out, "- Doctor:")
	assert.Contains(t, out, "**Diagnóstico sin descripción** (ICD-10: Sin código)")
	assert.Contains(t, out, "- Medicamento sin nombre\n")
	assert.Contains(t, out, "[Relevancia: 0.50] Texto no disponible")
}

func TestBuildPatientContextTruncatesCollections(t *testing.T) {
	patient := &entity.Patient{FirstName: "Ana", FirstSurname: "García"}

	records := &entity.ClinicalRecords{}
	for i := 0; i < 12; i++ {
		records.Appointments = append(records.Appointments, entity.Appointment{Reason: strPtr("Control")})
	}
	for i := 0; i < 20; i++ {
		records.Diagnoses = append(records.Diagnoses, entity.Diagnosis{Description: strPtr("Dx")})
	}
	for i := 0; i < 18; i++ {
		records.Prescriptions = append(records.Prescriptions, entity.Prescription{MedicationName: strPtr("Med")})
	}
	var chunks []entity.ScoredChunk
	for i := 0; i < 7; i++ {
		chunks = append(chunks, entity.ScoredChunk{Chunk: &entity.RecordChunk{ChunkText: "snippet"}, Score: 0.8})
	}

	out, err := BuildPatientContext(patient, records, chunks)
	require.NoError(t, err)

	assert.Equal(t, 10, strings.Count(out, "**Cita "))
	assert.Equal(t, 15, strings.Count(out, "**Dx**"))
	assert.Equal(t, 15, strings.Count(out, "- Med"))
	assert.Equal(t, 5, strings.Count(out, "[Relevancia:"))
}

func TestBuildPatientContextIsDeterministic(t *testing.T) {
	patient := &entity.Patient{
		FirstName:      "Ana",
		FirstSurname:   "García",
		DocumentNumber: "123",
		BirthDate:      timePtr(time.Date(1980, time.May, 1, 0, 0, 0, 0, time.UTC)),
	}
	records := &entity.ClinicalRecords{
		Diagnoses: []entity.Diagnosis{{Description: strPtr("Dx"), IcdCode: strPtr("A00")}},
	}

	first, err := BuildPatientContext(patient, records, nil)
	require.NoError(t, err)
	second, err := BuildPatientContext(patient, records, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
