package repository

import (
	"context"

	"github.com/yukikurage/founder-command-center/internal/database"
	"github.com/yukikurage/founder-command-center/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	*GormScopedRepository[models.Task, *models.Task]
}

// NewTaskRepository creates a TaskRepository listing recently updated tasks
// first, with client and worker preloaded
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{
		GormScopedRepository: NewScopedRepository[models.Task](db, "updated_at DESC, id DESC", "Client", "AssignedWorker"),
	}
}

// CountByStatus counts the owner's tasks grouped by status
func (r *GormTaskRepository) CountByStatus(ctx context.Context, ownerID uint64) (map[models.TaskStatus]int64, error) {
	var rows []struct {
		Status models.TaskStatus
		Total  int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Scopes(database.OwnedBy(ownerID)).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.TaskStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// TopClients ranks the owner's clients by number of tasks
func (r *GormTaskRepository) TopClients(ctx context.Context, ownerID uint64, limit int) ([]ClientTaskCount, error) {
	rows := []ClientTaskCount{}

	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Select("clients.id AS client_id, clients.name AS name, COUNT(tasks.id) AS task_count").
		Joins("LEFT JOIN tasks ON tasks.client_id = clients.id AND tasks.owner_id = clients.owner_id").
		Where("clients.owner_id = ?", ownerID).
		Group("clients.id, clients.name").
		Order("task_count DESC, clients.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
