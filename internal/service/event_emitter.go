package service

import (
	"context"

	"interview-prep-be/internal/pkg/logger"
	"interview-prep-be/pkg/events"
)

// eventEmitter publishes domain events without failing the caller.
type eventEmitter struct {
	publisher events.Publisher
	logger    logger.ILogger
}

func newEventEmitter(publisher events.Publisher, log logger.ILogger) eventEmitter {
	if publisher == nil {
		publisher = events.Discard{}
	}
	return eventEmitter{publisher: publisher, logger: log}
}

func (e eventEmitter) emit(ctx context.Context, eventType string, data map[string]interface{}) {
	if err := e.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		e.logger.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err,
		})
	}
}
