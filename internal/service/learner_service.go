package service

import (
	"context"

	"edumate-be/pkg/learner"

	"github.com/google/uuid"
)

// ILearnerService is the learner state API the controllers use. The engine
// implements it directly.
type ILearnerService interface {
	Track(ctx context.Context, owner uuid.UUID) (string, error)
	SelectTrack(ctx context.Context, owner uuid.UUID, track string) error
	Roadmap(ctx context.Context, owner uuid.UUID) ([]learner.Week, error)
	Tasks(ctx context.Context, owner uuid.UUID) ([]learner.Task, error)
	AdoptRoadmap(ctx context.Context, owner uuid.UUID, in learner.AdoptInput) (*learner.AdoptResult, error)
	ToggleTask(ctx context.Context, owner uuid.UUID, id string, completed bool) (*learner.Task, error)
	DailyTasks(ctx context.Context, owner uuid.UUID, filter learner.DailyFilter) (*learner.DailySet, error)
	CheckIn(ctx context.Context, owner uuid.UUID) (*learner.StreakResult, error)
	Overview(ctx context.Context, owner uuid.UUID) (*learner.Overview, error)
	Notifications(ctx context.Context, owner uuid.UUID) (*learner.NotificationFeed, error)
	AddNotification(ctx context.Context, owner uuid.UUID, title, message string) (*learner.Notification, error)
	MarkAllAsRead(ctx context.Context, owner uuid.UUID) (int, error)
	ActiveTab(ctx context.Context, owner uuid.UUID) (string, error)
	SetActiveTab(ctx context.Context, owner uuid.UUID, tab string) error
}

var _ ILearnerService = (*learner.Engine)(nil)

// Notifier is the slice of ILearnerService other services use to leave a
// message in the user's notification log.
type Notifier interface {
	AddNotification(ctx context.Context, owner uuid.UUID, title, message string) (*learner.Notification, error)
}
