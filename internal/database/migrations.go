package database

import (
	"fmt"

	"github.com/yukikurage/founder-command-center/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every persisted model in dependency order.
var Models = []any{
	&models.User{},
	&models.Client{},
	&models.Worker{},
	&models.Task{},
}

// requiredIndexes are the composite indexes owner-scoped queries depend on.
var requiredIndexes = []struct {
	model any
	name  string
}{
	{&models.Client{}, "idx_clients_owner_created_at"},
	{&models.Worker{}, "idx_workers_owner_name"},
	{&models.Task{}, "idx_tasks_owner_status"},
	{&models.Task{}, "idx_tasks_owner_due_date"},
	{&models.Task{}, "idx_tasks_owner_created_at"},
	{&models.Task{}, "idx_tasks_owner_updated_at"},
}

// Migrate creates or updates the schema and makes sure the composite
// indexes exist.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("Running database migrations")
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := EnsureIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	log.Info("Database migrations completed")
	return nil
}

// EnsureIndexes creates any required index that is missing.
func EnsureIndexes(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()
	for _, idx := range requiredIndexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		log.Info("Created index", zap.String("index", idx.name))
	}

	return nil
}
