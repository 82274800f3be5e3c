package mapper

import (
	"clinical-chat-be/internal/entity"
	"clinical-chat-be/internal/model"
)

type PatientMapper struct{}

func NewPatientMapper() *PatientMapper {
	return &PatientMapper{}
}

func (m *PatientMapper) ToEntity(p *model.Patient) *entity.Patient {
	if p == nil {
		return nil
	}
	return &entity.Patient{
		Id:             p.Id,
		FirstName:      p.FirstName,
		FirstSurname:   p.FirstSurname,
		SecondSurname:  p.SecondSurname,
		DocumentTypeId: p.DocumentTypeId,
		DocumentNumber: p.DocumentNumber,
		BirthDate:      p.BirthDate,
		Gender:         p.Gender,
	}
}

func (m *PatientMapper) AppointmentToEntity(a *model.Appointment) entity.Appointment {
	return entity.Appointment{
		Id:              a.Id,
		AppointmentDate: a.AppointmentDate,
		Status:          a.Status,
		Reason:          a.Reason,
		DoctorName:      a.DoctorName,
	}
}

func (m *PatientMapper) DiagnosisToEntity(d *model.Diagnosis) entity.Diagnosis {
	return entity.Diagnosis{
		Id:            d.Id,
		Description:   d.Description,
		IcdCode:       d.IcdCode,
		DiagnosisDate: d.DiagnosisDate,
	}
}

func (m *PatientMapper) PrescriptionToEntity(p *model.Prescription) entity.Prescription {
	return entity.Prescription{
		Id:             p.Id,
		MedicationName: p.MedicationName,
		Dosage:         p.Dosage,
		Frequency:      p.Frequency,
	}
}

func (m *PatientMapper) MedicalRecordToEntity(r *model.MedicalRecord) entity.MedicalRecord {
	return entity.MedicalRecord{
		Id:          r.Id,
		RecordType:  r.RecordType,
		Description: r.Description,
		RecordDate:  r.RecordDate,
	}
}
