package events

import (
	"time"
)

const (
	TypeQueryCompleted = "CHAT_QUERY_COMPLETED"
	TypeQueryFailed    = "CHAT_QUERY_FAILED"
)

// BaseEvent is the generic envelope published on the in-process event bus.
type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
