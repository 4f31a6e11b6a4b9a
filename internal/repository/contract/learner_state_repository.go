package contract

import (
	"context"

	"edumate-be/internal/entity"
	"edumate-be/internal/repository/specification"

	"github.com/google/uuid"
)

// LearnerStateRepository stores one row per (user, key).
type LearnerStateRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LearnerStateEntry, error)
	Upsert(ctx context.Context, entry *entity.LearnerStateEntry) error
	DeleteKeys(ctx context.Context, userID uuid.UUID, keys ...string) error
}
