package repository

import (
	"context"

	"github.com/yukikurage/founder-command-center/internal/database"
	"github.com/yukikurage/founder-command-center/internal/models"
	"gorm.io/gorm"
)

// GormWorkerRepository is a GORM implementation of WorkerRepository
type GormWorkerRepository struct {
	*GormScopedRepository[models.Worker, *models.Worker]
}

// NewWorkerRepository creates a WorkerRepository listing workers by name
func NewWorkerRepository(db *gorm.DB) WorkerRepository {
	return &GormWorkerRepository{
		GormScopedRepository: NewScopedRepository[models.Worker](db, "name ASC, id ASC"),
	}
}

// Delete unassigns the worker from its tasks and deletes it in a transaction
func (r *GormWorkerRepository) Delete(ctx context.Context, ownerID, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Scopes(database.OwnedBy(ownerID)).
			Where("assigned_worker_id = ?", id).
			UpdateColumn("assigned_worker_id", nil).Error; err != nil {
			return err
		}

		return deleteOwned[models.Worker](tx, ownerID, id)
	})
}
