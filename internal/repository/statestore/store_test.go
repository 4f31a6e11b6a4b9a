package statestore_test

import (
	"os"
	"testing"

	"edumate-be/internal/model"
	"edumate-be/internal/repository/statestore"
	"edumate-be/internal/repository/unitofwork"
	"edumate-be/pkg/database"
	"edumate-be/pkg/kvstore/kvstoretest"

	"github.com/stretchr/testify/require"
)

func TestStore_Postgres(t *testing.T) {
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.LearnerStateEntry{}))

	kvstoretest.Run(t, statestore.New(unitofwork.NewRepositoryFactory(db)))
}
