package unitofwork

import (
	"context"
	"errors"

	"edumate-be/internal/repository/contract"
)

var (
	ErrTxActive = errors.New("transaction already started")
	ErrNoTx     = errors.New("no active transaction")
)

// UnitOfWork hands out repositories that share one connection, or one
// transaction between Begin and Commit. Rollback without an active
// transaction is a no-op so it can always be deferred.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	LearnerStateRepository() contract.LearnerStateRepository
}
