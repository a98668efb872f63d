package service

import (
	"context"

	"interview-prep-be/internal/pkg/logger"
	"interview-prep-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// eventLogConsumer writes every in-process domain event to the log. It is the
// only subscriber when NATS is not configured.
type eventLogConsumer struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewEventLogConsumer(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IConsumerService {
	return &eventLogConsumer{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

func (c *eventLogConsumer) Consume(ctx context.Context) error {
	messages, err := c.pubSub.Subscribe(ctx, c.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.processMessage(msg)
		}
	}()

	return nil
}

func (c *eventLogConsumer) processMessage(msg *message.Message) {
	// Ack invalid messages too, they will never parse
	defer msg.Ack()

	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		c.logger.Warn("EVENTS", "Failed to unmarshal event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		return
	}

	c.logger.Info("EVENTS", event.Type, map[string]interface{}{
		"message_id":  msg.UUID,
		"occurred_at": event.OccurredAt,
		"data":        event.Data,
	})
}
