package service

import (
	"context"
	"fmt"

	"edumate-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const EventsTopic = "edumate.learner.events"

// EventPublisher is satisfied by the in-process bus and the NATS mirror.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// EventBus puts learner events on a watermill topic for the consumer.
type EventBus struct {
	publisher message.Publisher
	topic     string
}

func NewEventBus(publisher message.Publisher, topic string) *EventBus {
	return &EventBus{publisher: publisher, topic: topic}
}

func (b *EventBus) Publish(ctx context.Context, event events.Event) error {
	payload, err := events.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("type", event.EventType())

	if err := b.publisher.Publish(b.topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.EventType(), err)
	}
	return nil
}
