package contract

import (
	"context"
	"errors"
	"time"

	"edumate-be/internal/entity"
	"edumate-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ErrDuplicateEmail is returned by Create when the email is already
// registered.
var ErrDuplicateEmail = errors.New("duplicate email")

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindOne returns nil, nil when nothing matches.
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	UpdateLastSignIn(ctx context.Context, id uuid.UUID, at time.Time) error
}
