package implementation

import (
	"context"

	"clinical-chat-be/internal/entity"
	"clinical-chat-be/internal/mapper"
	"clinical-chat-be/internal/model"
	"clinical-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type RecordChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RecordChunkMapper
}

func NewRecordChunkRepository(db *gorm.DB) contract.RecordChunkRepository {
	return &RecordChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewRecordChunkMapper(),
	}
}

func (r *RecordChunkRepositoryImpl) Create(ctx context.Context, chunk *entity.RecordChunk, embedding []float32) error {
	m := &model.RecordChunk{
		Id:        chunk.Id,
		PatientId: chunk.PatientId,
		ChunkText: chunk.ChunkText,
		Embedding: pgvector.NewVector(embedding),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	chunk.Id = m.Id
	return nil
}

func (r *RecordChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, patientId uuid.UUID, embedding []float32, limit int, threshold float64) ([]entity.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding <=> query_vector) gives the similarity in [0,1].
	type result struct {
		model.RecordChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("record_chunks").
		Select("record_chunks.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("patient_id = ?", patientId).
		Where("deleted_at IS NULL").
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]entity.ScoredChunk, len(results))
	for i, res := range results {
		scored[i] = entity.ScoredChunk{
			Chunk: r.mapper.ToEntity(&res.RecordChunk),
			Score: res.Similarity,
		}
	}
	return scored, nil
}
