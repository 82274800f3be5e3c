package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Patient struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName      string    `gorm:"type:varchar(100);not null"`
	FirstSurname   string    `gorm:"type:varchar(100);not null"`
	SecondSurname  *string   `gorm:"type:varchar(100)"`
	DocumentTypeId int       `gorm:"not null;index:idx_patients_document,unique"`
	DocumentNumber string    `gorm:"type:varchar(30);not null;index:idx_patients_document,unique"`
	BirthDate      *time.Time
	Gender         *string        `gorm:"type:varchar(20)"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Patient) TableName() string {
	return "patients"
}

type Appointment struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId       uuid.UUID `gorm:"type:uuid;not null;index"`
	AppointmentDate *time.Time
	Status          *string   `gorm:"type:varchar(50)"`
	Reason          *string   `gorm:"type:text"`
	DoctorName      *string   `gorm:"type:varchar(150)"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (Appointment) TableName() string {
	return "appointments"
}

type Diagnosis struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId     uuid.UUID `gorm:"type:uuid;not null;index"`
	Description   *string   `gorm:"type:text"`
	IcdCode       *string   `gorm:"type:varchar(10)"`
	DiagnosisDate *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Diagnosis) TableName() string {
	return "diagnoses"
}

type Prescription struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId      uuid.UUID `gorm:"type:uuid;not null;index"`
	MedicationName *string   `gorm:"type:varchar(200)"`
	Dosage         *string   `gorm:"type:varchar(100)"`
	Frequency      *string   `gorm:"type:varchar(100)"`
	PrescribedAt   *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

type MedicalRecord struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId   uuid.UUID `gorm:"type:uuid;not null;index"`
	RecordType  *string   `gorm:"type:varchar(100)"`
	Description *string   `gorm:"type:text"`
	RecordDate  *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
