package mapper

import (
	"clinical-chat-be/internal/entity"
	"clinical-chat-be/internal/model"
)

type RecordChunkMapper struct{}

func NewRecordChunkMapper() *RecordChunkMapper {
	return &RecordChunkMapper{}
}

func (m *RecordChunkMapper) ToEntity(c *model.RecordChunk) *entity.RecordChunk {
	if c == nil {
		return nil
	}
	return &entity.RecordChunk{
		Id:        c.Id,
		PatientId: c.PatientId,
		ChunkText: c.ChunkText,
	}
}
