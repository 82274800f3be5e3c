package contract

import (
	"context"

	"clinical-chat-be/internal/entity"

	"github.com/google/uuid"
)

type PatientRepository interface {
	// FindByDocument returns nil, nil when no patient matches.
	FindByDocument(ctx context.Context, documentTypeId int, documentNumber string) (*entity.Patient, error)

	// FindClinicalRecords loads every record collection for a patient,
	// each ordered most recent first.
	FindClinicalRecords(ctx context.Context, patientId uuid.UUID) (*entity.ClinicalRecords, error)
}
