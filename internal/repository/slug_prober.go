package repository

import (
	"context"
	"fmt"

	"go-catalog-ws/internal/model"
	"go-catalog-ws/internal/slug"

	"gorm.io/gorm"
)

// gormSlugProber answers slug collision probes for the allocator. It runs
// on whatever handle it is given, so the writer can probe inside the same
// transaction that performs the insert.
type gormSlugProber struct {
	db *gorm.DB
}

func NewSlugProber(db *gorm.DB) *gormSlugProber {
	return &gormSlugProber{db}
}

func (p *gormSlugProber) SlugExists(ctx context.Context, entity, candidate string) (bool, error) {
	var count int64
	var err error
	switch entity {
	case slug.EntityProduct:
		err = p.db.WithContext(ctx).Model(&model.Product{}).Where("slug = ?", candidate).Count(&count).Error
	case slug.EntityProductVariant:
		err = p.db.WithContext(ctx).Model(&model.ProductVariant{}).Where("slug = ?", candidate).Count(&count).Error
	default:
		return false, fmt.Errorf("unknown slug entity %q", entity)
	}
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
