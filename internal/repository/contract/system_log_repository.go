package contract

import (
	"context"
)

type SystemLogRepository interface {
	Create(ctx context.Context, eventType string, details map[string]interface{}) error
}
