// Package kvstoretest holds the behaviour every kvstore.Store must share.
package kvstoretest

import (
	"context"
	"testing"

	"edumate-be/pkg/kvstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises store against the kvstore.Store contract.
func Run(t *testing.T, store kvstore.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		owner := uuid.New()
		_, found, err := store.Get(ctx, owner, kvstore.KeySelectedTrack)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("set then get", func(t *testing.T) {
		owner := uuid.New()
		err := store.Apply(ctx, owner, kvstore.NewBatch().Set(kvstore.KeySelectedTrack, "Backend Development"))
		require.NoError(t, err)

		val, found, err := store.Get(ctx, owner, kvstore.KeySelectedTrack)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Backend Development", val)
	})

	t.Run("batch applies in order", func(t *testing.T) {
		owner := uuid.New()
		batch := kvstore.NewBatch().
			Set(kvstore.KeyUserTasks, "[1]").
			Set(kvstore.KeyRoadmapData, "[]").
			Delete(kvstore.KeyUserTasks).
			Set(kvstore.KeyStreakData, `["2024-01-01"]`)
		require.NoError(t, store.Apply(ctx, owner, batch))

		got, err := store.GetMany(ctx, owner, kvstore.KeyUserTasks, kvstore.KeyRoadmapData, kvstore.KeyStreakData)
		require.NoError(t, err)
		assert.Equal(t, map[kvstore.Key]string{
			kvstore.KeyRoadmapData: "[]",
			kvstore.KeyStreakData:  `["2024-01-01"]`,
		}, got)
	})

	t.Run("owners are isolated", func(t *testing.T) {
		a, b := uuid.New(), uuid.New()
		require.NoError(t, store.Apply(ctx, a, kvstore.NewBatch().Set(kvstore.KeyActiveTab, "tasks")))

		_, found, err := store.Get(ctx, b, kvstore.KeyActiveTab)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("empty values are stored", func(t *testing.T) {
		owner := uuid.New()
		require.NoError(t, store.Apply(ctx, owner, kvstore.NewBatch().Set(kvstore.KeyActiveTab, "")))

		val, found, err := store.Get(ctx, owner, kvstore.KeyActiveTab)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "", val)
	})

	t.Run("nil owner rejected", func(t *testing.T) {
		_, _, err := store.Get(ctx, uuid.Nil, kvstore.KeyActiveTab)
		assert.ErrorIs(t, err, kvstore.ErrNilOwner)

		err = store.Apply(ctx, uuid.Nil, kvstore.NewBatch().Set(kvstore.KeyActiveTab, "x"))
		assert.ErrorIs(t, err, kvstore.ErrNilOwner)
	})
}
