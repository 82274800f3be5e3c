package implementation

import (
	"context"
	"encoding/json"

	"clinical-chat-be/internal/model"
	"clinical-chat-be/internal/repository/contract"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SystemLogRepositoryImpl struct {
	db *gorm.DB
}

func NewSystemLogRepository(db *gorm.DB) contract.SystemLogRepository {
	return &SystemLogRepositoryImpl{db: db}
}

func (r *SystemLogRepositoryImpl) Create(ctx context.Context, eventType string, details map[string]interface{}) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return err
	}
	m := &model.SystemLog{
		EventType: eventType,
		Details:   datatypes.JSON(payload),
	}
	return r.db.WithContext(ctx).Create(m).Error
}
