// Package nats mirrors learner events onto a JetStream stream so services
// outside this process can follow them.
package nats

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"edumate-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	StreamName    = "EDUMATE_EVENTS"
	subjectPrefix = "edumate.events."
	retention     = 7 * 24 * time.Hour
)

type Publisher struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func NewPublisher(url string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("edumate-be"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if err := ensureStream(js); err != nil {
		// The stream may be managed elsewhere; publishing still works if it exists.
		log.Printf("Warn: Failed to ensure stream '%s': %v", StreamName, err)
	}

	return &Publisher{nc: nc, js: js}, nil
}

func ensureStream(js jetstream.JetStream) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       StreamName,
		Subjects:   []string{subjectPrefix + ">"},
		Storage:    jetstream.FileStorage,
		Retention:  jetstream.LimitsPolicy,
		MaxAge:     retention,
		Duplicates: 2 * time.Minute,
	})
	return err
}

// Subject returns the JetStream subject an event is published on.
func Subject(event events.Event) string {
	return subjectPrefix + event.EventType()
}

// MsgID identifies an event for JetStream duplicate detection, so a
// re-mirrored event is stored once.
func MsgID(event events.Event) string {
	owner, _ := events.UserID(event)
	return event.EventType() + ":" + owner.String() + ":" + strconv.FormatInt(event.Timestamp().UnixNano(), 10)
}

func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	data, err := events.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := Subject(event)
	if _, err := p.js.Publish(ctx, subject, data, jetstream.WithMsgID(MsgID(event))); err != nil {
		return fmt.Errorf("failed to publish event to subject %s: %w", subject, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
	}
}
