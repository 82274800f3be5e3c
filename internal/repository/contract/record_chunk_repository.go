package contract

import (
	"context"

	"clinical-chat-be/internal/entity"

	"github.com/google/uuid"
)

type RecordChunkRepository interface {
	Create(ctx context.Context, chunk *entity.RecordChunk, embedding []float32) error

	// SearchSimilarWithScore runs a cosine-similarity search over the patient's
	// indexed chunks, keeping only results at or above threshold, ordered by
	// descending similarity.
	SearchSimilarWithScore(ctx context.Context, patientId uuid.UUID, embedding []float32, limit int, threshold float64) ([]entity.ScoredChunk, error)
}
