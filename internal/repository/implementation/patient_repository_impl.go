package implementation

import (
	"context"
	"errors"

	"clinical-chat-be/internal/entity"
	"clinical-chat-be/internal/mapper"
	"clinical-chat-be/internal/model"
	"clinical-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PatientMapper
}

func NewPatientRepository(db *gorm.DB) contract.PatientRepository {
	return &PatientRepositoryImpl{
		db:     db,
		mapper: mapper.NewPatientMapper(),
	}
}

func (r *PatientRepositoryImpl) FindByDocument(ctx context.Context, documentTypeId int, documentNumber string) (*entity.Patient, error) {
	var m model.Patient
	err := r.db.WithContext(ctx).
		Where("document_type_id = ? AND document_number = ?", documentTypeId, documentNumber).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PatientRepositoryImpl) FindClinicalRecords(ctx context.Context, patientId uuid.UUID) (*entity.ClinicalRecords, error) {
	records := &entity.ClinicalRecords{}

	var appointments []*model.Appointment
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientId).
		Order("appointment_date DESC NULLS LAST").
		Find(&appointments).Error; err != nil {
		return nil, err
	}
	for _, a := range appointments {
		records.Appointments = append(records.Appointments, r.mapper.AppointmentToEntity(a))
	}

	var diagnoses []*model.Diagnosis
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientId).
		Order("diagnosis_date DESC NULLS LAST").
		Find(&diagnoses).Error; err != nil {
		return nil, err
	}
	for _, d := range diagnoses {
		records.Diagnoses = append(records.Diagnoses, r.mapper.DiagnosisToEntity(d))
	}

	var prescriptions []*model.Prescription
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientId).
		Order("prescribed_at DESC NULLS LAST").
		Find(&prescriptions).Error; err != nil {
		return nil, err
	}
	for _, p := range prescriptions {
		records.Prescriptions = append(records.Prescriptions, r.mapper.PrescriptionToEntity(p))
	}

	var medicalRecords []*model.MedicalRecord
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientId).
		Order("record_date DESC NULLS LAST").
		Find(&medicalRecords).Error; err != nil {
		return nil, err
	}
	for _, m := range medicalRecords {
		records.MedicalRecords = append(records.MedicalRecords, r.mapper.MedicalRecordToEntity(m))
	}

	return records, nil
}
