package repository

import (
	"context"

	"go-catalog-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Save(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	FindDuplicate(ctx context.Context, name, url string, excludeID uuid.UUID) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SubCategoryRepository interface {
	Create(ctx context.Context, sub *model.SubCategory) error
	Save(ctx context.Context, sub *model.SubCategory) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SubCategory, error)
	FindAll(ctx context.Context) ([]model.SubCategory, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.SubCategory, error)
	FindDuplicate(ctx context.Context, name, url string, excludeID uuid.UUID) (*model.SubCategory, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepo) Save(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) FindAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&categories).Error
	return categories, err
}

// FindDuplicate returns another category (different id) holding the same
// name or url, or nil when both are free.
func (r *categoryRepo) FindDuplicate(ctx context.Context, name, url string, excludeID uuid.UUID) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Where("(name = ? OR url = ?) AND id <> ?", name, url, excludeID).
		First(&category).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type subCategoryRepo struct {
	db *gorm.DB
}

func NewSubCategoryRepo(db *gorm.DB) SubCategoryRepository {
	return &subCategoryRepo{db}
}

func (r *subCategoryRepo) Create(ctx context.Context, sub *model.SubCategory) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *subCategoryRepo) Save(ctx context.Context, sub *model.SubCategory) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

func (r *subCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SubCategory, error) {
	var sub model.SubCategory
	err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subCategoryRepo) FindAll(ctx context.Context) ([]model.SubCategory, error) {
	var subs []model.SubCategory
	err := r.db.WithContext(ctx).Preload("Category").Order("updated_at DESC").Find(&subs).Error
	return subs, err
}

func (r *subCategoryRepo) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.SubCategory, error) {
	var subs []model.SubCategory
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("updated_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *subCategoryRepo) FindDuplicate(ctx context.Context, name, url string, excludeID uuid.UUID) (*model.SubCategory, error) {
	var sub model.SubCategory
	err := r.db.WithContext(ctx).
		Where("(name = ? OR url = ?) AND id <> ?", name, url, excludeID).
		First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *subCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.SubCategory{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
