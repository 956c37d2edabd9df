package repository

import (
	"context"

	"github.com/yukikurage/founder-command-center/internal/database"
	"github.com/yukikurage/founder-command-center/internal/models"
	"gorm.io/gorm"
)

// GormClientRepository is a GORM implementation of ClientRepository
type GormClientRepository struct {
	*GormScopedRepository[models.Client, *models.Client]
}

// NewClientRepository creates a ClientRepository listing newest clients first
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &GormClientRepository{
		GormScopedRepository: NewScopedRepository[models.Client](db, "created_at DESC, id DESC"),
	}
}

// Delete deletes a client and all of its tasks in a transaction
func (r *GormClientRepository) Delete(ctx context.Context, ownerID, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(database.OwnedBy(ownerID)).
			Where("client_id = ?", id).
			Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return deleteOwned[models.Client](tx, ownerID, id)
	})
}
