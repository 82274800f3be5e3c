package service

import (
	"context"
	"fmt"
	"time"

	"clinical-chat-be/internal/entity"
	"clinical-chat-be/internal/repository/contract"

	gocache "github.com/patrickmn/go-cache"
)

type LookupStatus int

const (
	LookupFound LookupStatus = iota
	LookupNotFound
	LookupFailed
)

// LookupResult distinguishes {found, not-found, failed} explicitly so the
// caller's fatal/non-fatal handling is driven by type, not by error matching.
type LookupResult struct {
	Status  LookupStatus
	Patient *entity.Patient
	Records *entity.ClinicalRecords
	Err     error
}

type IClinicalService interface {
	FetchPatientAndRecords(ctx context.Context, documentTypeId int, documentNumber string) LookupResult
}

type clinicalService struct {
	patientRepo contract.PatientRepository
	cache       *gocache.Cache
}

func NewClinicalService(patientRepo contract.PatientRepository) IClinicalService {
	return &clinicalService{
		patientRepo: patientRepo,
		cache:       gocache.New(60*time.Second, 5*time.Minute),
	}
}

type cachedLookup struct {
	patient *entity.Patient
	records *entity.ClinicalRecords
}

func (s *clinicalService) FetchPatientAndRecords(ctx context.Context, documentTypeId int, documentNumber string) LookupResult {
	cacheKey := fmt.Sprintf("%d:%s", documentTypeId, documentNumber)
	if hit, ok := s.cache.Get(cacheKey); ok {
		cached := hit.(cachedLookup)
		return LookupResult{Status: LookupFound, Patient: cached.patient, Records: cached.records}
	}

	patient, err := s.patientRepo.FindByDocument(ctx, documentTypeId, documentNumber)
	if err != nil {
		return LookupResult{Status: LookupFailed, Err: fmt.Errorf("patient lookup: %w", err)}
	}
	if patient == nil {
		return LookupResult{Status: LookupNotFound}
	}

	records, err := s.patientRepo.FindClinicalRecords(ctx, patient.Id)
	if err != nil {
		return LookupResult{Status: LookupFailed, Err: fmt.Errorf("clinical records lookup: %w", err)}
	}

	s.cache.SetDefault(cacheKey, cachedLookup{patient: patient, records: records})

	return LookupResult{Status: LookupFound, Patient: patient, Records: records}
}
