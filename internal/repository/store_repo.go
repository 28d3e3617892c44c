package repository

import (
	"context"

	"go-catalog-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	Save(ctx context.Context, store *model.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Store, error)
	FindByURL(ctx context.Context, url string) (*model.Store, error)
	FindDuplicate(ctx context.Context, name, url string, excludeID uuid.UUID) (*model.Store, error)
}

type storeRepo struct {
	db *gorm.DB
}

func NewStoreRepo(db *gorm.DB) StoreRepository {
	return &storeRepo{db}
}

func (r *storeRepo) Create(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *storeRepo) Save(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

func (r *storeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) FindByURL(ctx context.Context, url string) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).First(&store, "url = ?", url).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// FindDuplicate returns another store (different id) holding the same name
// or url, or nil when the namespace is free.
func (r *storeRepo) FindDuplicate(ctx context.Context, name, url string, excludeID uuid.UUID) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).
		Where("(name = ? OR url = ?) AND id <> ?", name, url, excludeID).
		First(&store).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}
