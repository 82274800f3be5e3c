package service

import (
	"context"
	"encoding/json"
	"time"

	"clinical-chat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IAuditPublisher publishes chat audit events on the in-process bus.
// Publishing is fire-and-forget from the chat loop's point of view.
type IAuditPublisher interface {
	Publish(ctx context.Context, eventType string, data map[string]interface{}) error
}

type auditPublisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewAuditPublisherService(topicName string, pubSub *gochannel.GoChannel) IAuditPublisher {
	return &auditPublisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (s *auditPublisherService) Publish(ctx context.Context, eventType string, data map[string]interface{}) error {
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return s.pubSub.Publish(s.topicName, msg)
}
