package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/founder-command-center/internal/database"
	"github.com/yukikurage/founder-command-center/internal/repository"
	"github.com/yukikurage/founder-command-center/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

func TestSeedSampleData(t *testing.T) {
	db, err := database.Open("sqlite", ":memory:?_foreign_keys=on", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, zap.NewNop()))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	ctx := context.Background()
	store := repository.NewStore(db)
	user, err := services.NewAuthService(store.Users).CreateUser(ctx, services.CreateUserInput{
		Username: "testuser",
		Password: "testpass123",
	})
	require.NoError(t, err)

	require.NoError(t, seedSampleData(ctx, store, user))

	clients, err := services.NewClientService(store).List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, clients, 2)

	workers, err := services.NewWorkerService(store).List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, workers, 2)

	tasks, err := services.NewTaskService(store).List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		require.NotNil(t, task.Client)
		assert.Equal(t, "Acme Corp", task.Client.Name)
	}
}
