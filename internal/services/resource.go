package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/founder-command-center/internal/repository"
)

// resource implements the owner-scoped operations shared by clients,
// workers and tasks. Writes run in a single transaction and return the row
// as re-read from the store.
type resource[E any, P any] struct {
	store *repository.Store
	name  string
	repo  func(s *repository.Store) repository.ScopedRepository[E]
	id    func(entity *E) uint64
	apply func(ctx context.Context, tx *repository.Store, ownerID uint64, entity *E, payload P, creating bool) error
}

// List returns every row of the owner
func (r *resource[E, P]) List(ctx context.Context, ownerID uint64) ([]E, error) {
	entities, err := r.repo(r.store).List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", r.name, err)
	}
	return entities, nil
}

// Get returns ErrNotFound unless the row exists and belongs to the owner
func (r *resource[E, P]) Get(ctx context.Context, ownerID, id uint64) (*E, error) {
	entity, err := r.repo(r.store).Find(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err, "find "+r.name)
	}
	return entity, nil
}

// Create validates payload and stores a new row owned by ownerID
func (r *resource[E, P]) Create(ctx context.Context, ownerID uint64, payload P) (*E, error) {
	var created *E
	err := r.store.Transaction(ctx, func(tx *repository.Store) error {
		entity := new(E)
		if err := r.apply(ctx, tx, ownerID, entity, payload, true); err != nil {
			return err
		}

		repo := r.repo(tx)
		if err := repo.Create(ctx, ownerID, entity); err != nil {
			return fmt.Errorf("failed to create %s: %w", r.name, err)
		}

		reloaded, err := repo.Find(ctx, ownerID, r.id(entity))
		if err != nil {
			return fmt.Errorf("failed to reload %s: %w", r.name, err)
		}
		created = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies the fields present in payload to an owned row
func (r *resource[E, P]) Update(ctx context.Context, ownerID, id uint64, payload P) (*E, error) {
	var updated *E
	err := r.store.Transaction(ctx, func(tx *repository.Store) error {
		repo := r.repo(tx)
		entity, err := repo.Find(ctx, ownerID, id)
		if err != nil {
			return notFound(err, "find "+r.name)
		}

		if err := r.apply(ctx, tx, ownerID, entity, payload, false); err != nil {
			return err
		}

		if err := repo.Update(ctx, ownerID, entity); err != nil {
			return fmt.Errorf("failed to update %s: %w", r.name, err)
		}

		reloaded, err := repo.Find(ctx, ownerID, id)
		if err != nil {
			return fmt.Errorf("failed to reload %s: %w", r.name, err)
		}
		updated = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an owned row together with its cascades
func (r *resource[E, P]) Delete(ctx context.Context, ownerID, id uint64) error {
	if err := r.repo(r.store).Delete(ctx, ownerID, id); err != nil {
		return notFound(err, "delete "+r.name)
	}
	return nil
}
