package service

import (
	"context"
	"encoding/json"

	"clinical-chat-be/internal/pkg/logger"
	"clinical-chat-be/internal/repository/contract"
	"clinical-chat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IAuditConsumerService interface {
	Consume(ctx context.Context) error
}

// auditConsumerService drains chat audit events off the bus and persists
// them as system_log rows.
type auditConsumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	systemLogRepo contract.SystemLogRepository
	logger        logger.ILogger
}

func NewAuditConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	systemLogRepo contract.SystemLogRepository,
	log logger.ILogger,
) IAuditConsumerService {
	return &auditConsumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		systemLogRepo: systemLogRepo,
		logger:        log,
	}
}

func (s *auditConsumerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *auditConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var evt events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		s.logger.Error("AuditConsumer", "Failed to unmarshal audit event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed events are not retriable
		return
	}

	if err := s.systemLogRepo.Create(ctx, evt.Type, evt.Data); err != nil {
		s.logger.Error("AuditConsumer", "Failed to persist audit event", map[string]interface{}{
			"event_type": evt.Type,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
