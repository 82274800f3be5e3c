package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// RecordChunk is one indexed fragment of free-text clinical documentation.
// The embedding dimension must match the embedding provider's output.
type RecordChunk struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChunkText string          `gorm:"type:text;not null"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	DeletedAt gorm.DeletedAt  `gorm:"index"`
}

func (RecordChunk) TableName() string {
	return "record_chunks"
}
