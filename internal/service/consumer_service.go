package service

import (
	"context"
	"time"

	"edumate-be/internal/pkg/logger"
	"edumate-be/internal/pkg/mailer"
	"edumate-be/internal/repository/specification"
	"edumate-be/internal/repository/unitofwork"
	"edumate-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// NotificationDelivery pushes a frame to a user's live connections.
type NotificationDelivery interface {
	Send(ctx context.Context, userID uuid.UUID, frameType string, data interface{}) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber   message.Subscriber
	topicName    string
	delivery     NotificationDelivery
	mirror       EventPublisher
	emailService mailer.IEmailService
	uowFactory   unitofwork.RepositoryFactory
	logger       logger.ILogger
}

// NewConsumerService wires the bus consumer. mirror and emailService may be
// nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	delivery NotificationDelivery,
	mirror EventPublisher,
	emailService mailer.IEmailService,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:   subscriber,
		topicName:    topicName,
		delivery:     delivery,
		mirror:       mirror,
		emailService: emailService,
		uowFactory:   uowFactory,
		logger:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks: every side effect is best effort and a
// redelivery would duplicate pushes and mails.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Error("Consumer", "Failed to decode event", map[string]interface{}{"error": err, "message_id": msg.UUID})
		return
	}

	if cs.mirror != nil {
		if err := cs.mirror.Publish(ctx, event); err != nil {
			cs.logger.Warn("Consumer", "Failed to mirror event", map[string]interface{}{"type": event.Type, "error": err})
		}
	}

	userID, ok := events.UserID(event)
	if !ok {
		return
	}

	switch event.Type {
	case events.TypeNotificationCreated:
		if err := cs.delivery.Send(ctx, userID, "notification", event.Data); err != nil {
			cs.logger.Warn("Consumer", "Failed to push notification", map[string]interface{}{"user_id": userID.String(), "error": err})
		}

	case events.TypeTaskToggled, events.TypeStreakContinued:
		if err := cs.delivery.Send(ctx, userID, "learner_event", map[string]interface{}{"type": event.Type, "data": event.Data}); err != nil {
			cs.logger.Warn("Consumer", "Failed to push event", map[string]interface{}{"user_id": userID.String(), "error": err})
		}

	case events.TypeUserRegistered:
		email, _ := event.Data["email"].(string)
		cs.sendMail(event.Type, userID, func() error { return cs.emailService.SendWelcome(email) })

	case events.TypeRoadmapAdopted:
		track, _ := event.Data["track"].(string)
		weeks := intField(event.Data["weeks"])
		email, err := cs.lookupEmail(ctx, userID)
		if err != nil || email == "" {
			return
		}
		cs.sendMail(event.Type, userID, func() error { return cs.emailService.SendRoadmapReady(email, track, weeks) })
	}
}

func (cs *consumerService) sendMail(eventType string, userID uuid.UUID, send func() error) {
	if cs.emailService == nil {
		return
	}
	start := time.Now()
	if err := send(); err != nil {
		cs.logger.Error("Consumer", "Failed to send email", map[string]interface{}{
			"event":   eventType,
			"user_id": userID.String(),
			"error":   err,
		})
		return
	}
	cs.logger.Info("Consumer", "Email sent", map[string]interface{}{
		"event":       eventType,
		"user_id":     userID.String(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

func (cs *consumerService) lookupEmail(ctx context.Context, userID uuid.UUID) (string, error) {
	if cs.uowFactory == nil {
		return "", nil
	}
	user, err := cs.uowFactory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByID{ID: userID})
	if err != nil {
		cs.logger.Error("Consumer", "Failed to load user", map[string]interface{}{"user_id": userID.String(), "error": err})
		return "", err
	}
	if user == nil {
		return "", nil
	}
	return user.Email, nil
}

// intField reads a number that went through JSON.
func intField(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}
