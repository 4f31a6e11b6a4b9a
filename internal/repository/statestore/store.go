// Package statestore persists learner state in Postgres through the unit of
// work, one row per (user, key).
package statestore

import (
	"context"
	"fmt"

	"edumate-be/internal/entity"
	"edumate-be/internal/repository/specification"
	"edumate-be/internal/repository/unitofwork"
	"edumate-be/pkg/kvstore"

	"github.com/google/uuid"
)

type Store struct {
	uowFactory unitofwork.RepositoryFactory
}

var _ kvstore.Store = (*Store)(nil)

func New(uowFactory unitofwork.RepositoryFactory) *Store {
	return &Store{uowFactory: uowFactory}
}

func (s *Store) Get(ctx context.Context, owner uuid.UUID, key kvstore.Key) (string, bool, error) {
	vals, err := s.GetMany(ctx, owner, key)
	if err != nil {
		return "", false, err
	}
	v, ok := vals[key]
	return v, ok, nil
}

func (s *Store) GetMany(ctx context.Context, owner uuid.UUID, keys ...kvstore.Key) (map[kvstore.Key]string, error) {
	if owner == uuid.Nil {
		return nil, kvstore.ErrNilOwner
	}
	out := make(map[kvstore.Key]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.LearnerStateRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: owner},
		specification.ByStateKeys{Keys: names},
	)
	if err != nil {
		return nil, fmt.Errorf("load learner state: %w", err)
	}
	for _, r := range rows {
		out[kvstore.Key(r.Key)] = r.Value
	}
	return out, nil
}

// Apply runs the batch inside one transaction.
func (s *Store) Apply(ctx context.Context, owner uuid.UUID, batch *kvstore.Batch) error {
	if owner == uuid.Nil {
		return kvstore.ErrNilOwner
	}
	if batch.Len() == 0 {
		return nil
	}

	return unitofwork.WithinTransaction(ctx, s.uowFactory, func(uow unitofwork.UnitOfWork) error {
		repo := uow.LearnerStateRepository()
		for _, op := range batch.Ops() {
			var err error
			if op.Delete {
				err = repo.DeleteKeys(ctx, owner, string(op.Key))
			} else {
				err = repo.Upsert(ctx, &entity.LearnerStateEntry{UserId: owner, Key: string(op.Key), Value: op.Value})
			}
			if err != nil {
				return fmt.Errorf("write %s: %w", op.Key, err)
			}
		}
		return nil
	})
}
