package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories sharing one connection or transaction.
type Store struct {
	db      *gorm.DB
	Users   UserRepository
	Clients ClientRepository
	Workers WorkerRepository
	Tasks   TaskRepository
}

// NewStore creates repositories on top of db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:      db,
		Users:   NewUserRepository(db),
		Clients: NewClientRepository(db),
		Workers: NewWorkerRepository(db),
		Tasks:   NewTaskRepository(db),
	}
}

// Transaction runs fn with a Store bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
