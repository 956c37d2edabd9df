package repository

import (
	"context"

	"github.com/yukikurage/founder-command-center/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OwnedModel is satisfied by pointers to models carrying an owner_id column.
type OwnedModel[E any] interface {
	*E
	SetOwner(ownerID uint64)
}

// GormScopedRepository is a GORM implementation of ScopedRepository
type GormScopedRepository[E any, P OwnedModel[E]] struct {
	db       *gorm.DB
	order    string
	preloads []string
}

// NewScopedRepository creates a repository listing rows in the given order
// and preloading the named relations on every read.
func NewScopedRepository[E any, P OwnedModel[E]](db *gorm.DB, order string, preloads ...string) *GormScopedRepository[E, P] {
	return &GormScopedRepository[E, P]{
		db:       db,
		order:    order,
		preloads: preloads,
	}
}

func (r *GormScopedRepository[E, P]) scoped(ctx context.Context, ownerID uint64) *gorm.DB {
	query := r.db.WithContext(ctx).Model(new(E)).Scopes(database.OwnedBy(ownerID))
	for _, p := range r.preloads {
		query = query.Preload(p)
	}
	return query
}

// List retrieves all rows of the owner
func (r *GormScopedRepository[E, P]) List(ctx context.Context, ownerID uint64) ([]E, error) {
	entities := []E{}
	if err := r.scoped(ctx, ownerID).Order(r.order).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Find finds a row by ID within the owner's rows
func (r *GormScopedRepository[E, P]) Find(ctx context.Context, ownerID, id uint64) (*E, error) {
	entity := new(E)
	if err := r.scoped(ctx, ownerID).First(entity, id).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

// Create creates a new row owned by ownerID
func (r *GormScopedRepository[E, P]) Create(ctx context.Context, ownerID uint64, entity *E) error {
	P(entity).SetOwner(ownerID)
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
}

// Update updates all mutable columns, including ones cleared to NULL
func (r *GormScopedRepository[E, P]) Update(ctx context.Context, ownerID uint64, entity *E) error {
	P(entity).SetOwner(ownerID)
	return r.db.WithContext(ctx).
		Scopes(database.OwnedBy(ownerID)).
		Select("*").
		Omit("owner_id", "created_at", clause.Associations).
		Updates(entity).Error
}

// Delete deletes a row of the owner
func (r *GormScopedRepository[E, P]) Delete(ctx context.Context, ownerID, id uint64) error {
	return deleteOwned[E](r.db.WithContext(ctx), ownerID, id)
}

func deleteOwned[E any](db *gorm.DB, ownerID, id uint64) error {
	result := db.Scopes(database.OwnedBy(ownerID)).Delete(new(E), id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
