package entity

import (
	"github.com/google/uuid"
)

type RecordChunk struct {
	Id        uuid.UUID
	PatientId uuid.UUID
	ChunkText string
}

// ScoredChunk wraps a RecordChunk with its relevance score in [0,1],
// as produced by the similarity search. Ordering is by descending score.
type ScoredChunk struct {
	Chunk *RecordChunk
	Score float64
}
