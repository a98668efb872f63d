package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// DefaultTopic carries every event on the in-process bus.
const DefaultTopic = "interview.events"

// ChannelPublisher publishes onto an in-process watermill pub/sub.
type ChannelPublisher struct {
	pubSub *gochannel.GoChannel
	topic  string
}

func NewChannelPublisher(pubSub *gochannel.GoChannel, topic string) *ChannelPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &ChannelPublisher{pubSub: pubSub, topic: topic}
}

func (p *ChannelPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("type", event.EventType())
	msg.SetContext(ctx)

	if err := p.pubSub.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.EventType(), err)
	}
	return nil
}

func (p *ChannelPublisher) Topic() string {
	return p.topic
}
