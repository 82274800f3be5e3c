package service

import (
	"context"
	"fmt"

	"clinical-chat-be/internal/entity"
	"clinical-chat-be/internal/repository/contract"
	"clinical-chat-be/pkg/embedding"

	"github.com/google/uuid"
)

type IVectorSearchService interface {
	// SearchSimilarChunks embeds the question and runs a similarity search
	// over the patient's indexed chunks. Results come back ordered by
	// descending relevance, already filtered by minScore.
	SearchSimilarChunks(ctx context.Context, patientId uuid.UUID, question string, k int, minScore float64) ([]entity.ScoredChunk, error)
}

type vectorSearchService struct {
	chunkRepo         contract.RecordChunkRepository
	embeddingProvider embedding.EmbeddingProvider
}

func NewVectorSearchService(chunkRepo contract.RecordChunkRepository, embeddingProvider embedding.EmbeddingProvider) IVectorSearchService {
	return &vectorSearchService{
		chunkRepo:         chunkRepo,
		embeddingProvider: embeddingProvider,
	}
}

func (s *vectorSearchService) SearchSimilarChunks(ctx context.Context, patientId uuid.UUID, question string, k int, minScore float64) ([]entity.ScoredChunk, error) {
	resp, err := s.embeddingProvider.Generate(question, "search_query")
	if err != nil {
		return nil, fmt.Errorf("question embedding: %w", err)
	}

	chunks, err := s.chunkRepo.SearchSimilarWithScore(ctx, patientId, resp.Values, k, minScore)
	if err != nil {
		return nil, fmt.Errorf("chunk similarity search: %w", err)
	}
	return chunks, nil
}
