package repository

import (
	"context"
	"time"

	"github.com/yukikurage/founder-command-center/internal/models"
)

// ScopedRepository is data access restricted to the rows of a single owner.
// Rows belonging to other owners behave as if they did not exist.
type ScopedRepository[E any] interface {
	// List returns every entity of the owner in the repository's default order
	List(ctx context.Context, ownerID uint64) ([]E, error)

	// Find returns gorm.ErrRecordNotFound unless id exists and is owned by ownerID
	Find(ctx context.Context, ownerID, id uint64) (*E, error)

	// Create persists entity with its owner forced to ownerID
	Create(ctx context.Context, ownerID uint64, entity *E) error

	// Update writes every mutable column of entity; owner and creation time are never changed
	Update(ctx context.Context, ownerID uint64, entity *E) error

	// Delete removes the entity and applies its cascade rules
	Delete(ctx context.Context, ownerID, id uint64) error
}

// ClientRepository deletes a client's tasks together with the client.
type ClientRepository interface {
	ScopedRepository[models.Client]
}

// WorkerRepository detaches tasks from a worker before deleting it.
type WorkerRepository interface {
	ScopedRepository[models.Worker]
}

// TaskRepository adds the aggregate reads used by analytics.
type TaskRepository interface {
	ScopedRepository[models.Task]

	// CountByStatus counts the owner's tasks per status
	CountByStatus(ctx context.Context, ownerID uint64) (map[models.TaskStatus]int64, error)

	// TopClients ranks the owner's clients by task count, ties by id
	TopClients(ctx context.Context, ownerID uint64, limit int) ([]ClientTaskCount, error)
}

// ClientTaskCount is a row of TaskRepository.TopClients.
type ClientTaskCount struct {
	ClientID  uint64
	Name      string
	TaskCount int64
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// TouchLastLogin records a successful login
	TouchLastLogin(ctx context.Context, id uint64, at time.Time) error

	// Delete removes a user and everything it owns
	Delete(ctx context.Context, id uint64) error
}
