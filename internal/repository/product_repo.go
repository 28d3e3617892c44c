package repository

import (
	"context"

	"go-catalog-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductFilters carries every filter key the public listing accepts.
// Zero values mean "not filtered".
type ProductFilters struct {
	CategoryID    uuid.UUID
	SubCategoryID uuid.UUID
	OfferTag      string
	Size          string
	Color         string
	Brand         string
	OnSale        bool
	OnDiscount    bool
}

// Sort keys accepted by the listing query.
const (
	SortMostPopular = "most-popular"
	SortNewArrivals = "new-arrivals"
	SortTopRated    = "top-rated"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByIDWithVariants(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindPage(ctx context.Context, filters ProductFilters, sortBy string, limit, offset int) ([]model.Product, int64, error)
	FindAllByStore(ctx context.Context, storeID uuid.UUID) ([]model.Product, error)
	FindVariantByID(ctx context.Context, id uuid.UUID) (*model.ProductVariant, error)

	// Transactional writes. The caller owns the transaction boundary and
	// hands the tx handle in.
	CreateProduct(tx *gorm.DB, product *model.Product) error
	CreateVariant(tx *gorm.DB, variant *model.ProductVariant) error
	DeleteCascade(tx *gorm.DB, productID uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByIDWithVariants(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Variants.Images").
		Preload("Variants.Colors").
		Preload("Variants.Sizes").
		Preload("Variants.Specs").
		Preload("Specs").
		Preload("Questions").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// applyFilters builds the listing predicate from every declared filter key.
// Child-collection filters use EXISTS subqueries so a product matches when
// any of its variants does.
func applyFilters(db *gorm.DB, f ProductFilters) *gorm.DB {
	if f.CategoryID != uuid.Nil {
		db = db.Where("products.category_id = ?", f.CategoryID)
	}
	if f.SubCategoryID != uuid.Nil {
		db = db.Where("products.sub_category_id = ?", f.SubCategoryID)
	}
	if f.Brand != "" {
		db = db.Where("products.brand = ?", f.Brand)
	}
	if f.OnSale {
		db = db.Where("EXISTS (SELECT 1 FROM product_variants pv WHERE pv.product_id = products.id AND pv.is_sale = ?)", true)
	}
	if f.OfferTag != "" {
		db = db.Where("EXISTS (SELECT 1 FROM product_variants pv WHERE pv.product_id = products.id AND pv.keywords LIKE ?)", "%"+f.OfferTag+"%")
	}
	if f.Size != "" {
		db = db.Where(`EXISTS (SELECT 1 FROM sizes s
			JOIN product_variants pv ON pv.id = s.product_variant_id
			WHERE pv.product_id = products.id AND s.size = ?)`, f.Size)
	}
	if f.Color != "" {
		db = db.Where(`EXISTS (SELECT 1 FROM colors c
			JOIN product_variants pv ON pv.id = c.product_variant_id
			WHERE pv.product_id = products.id AND c.name = ?)`, f.Color)
	}
	if f.OnDiscount {
		db = db.Where(`EXISTS (SELECT 1 FROM sizes s
			JOIN product_variants pv ON pv.id = s.product_variant_id
			WHERE pv.product_id = products.id AND s.discount > 0)`)
	}
	return db
}

func applySort(db *gorm.DB, sortBy string) *gorm.DB {
	switch sortBy {
	case SortMostPopular:
		return db.Order("products.sales DESC")
	case SortTopRated:
		return db.Order("products.rating DESC")
	case SortNewArrivals:
		return db.Order("products.created_at DESC")
	default:
		return db.Order("products.created_at DESC")
	}
}

// FindPage returns one page of the filtered catalog plus the count of the
// entire filter-matching set, independent of the page window.
func (r *productRepo) FindPage(ctx context.Context, filters ProductFilters, sortBy string, limit, offset int) ([]model.Product, int64, error) {
	var total int64
	countQuery := applyFilters(r.db.WithContext(ctx).Model(&model.Product{}), filters)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	query := applyFilters(r.db.WithContext(ctx).Model(&model.Product{}), filters)
	query = applySort(query, sortBy)
	err := query.
		Preload("Variants.Sizes").
		Preload("Variants.Images").
		Preload("Variants.Colors").
		Limit(limit).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

func (r *productRepo) FindAllByStore(ctx context.Context, storeID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Preload("Category").
		Preload("SubCategory").
		Preload("Store").
		Preload("Variants.Images").
		Preload("Variants.Colors").
		Preload("Variants.Sizes").
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindVariantByID(ctx context.Context, id uuid.UUID) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	err := r.db.WithContext(ctx).
		Preload("Sizes").
		Preload("Images").
		Preload("Colors").
		First(&variant, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// CreateProduct persists the product together with its nested first variant,
// specs and questions in one insert chain on the caller's transaction.
func (r *productRepo) CreateProduct(tx *gorm.DB, product *model.Product) error {
	return tx.Create(product).Error
}

func (r *productRepo) CreateVariant(tx *gorm.DB, variant *model.ProductVariant) error {
	return tx.Create(variant).Error
}

// DeleteCascade removes child rows bottom-up before the parent: sizes,
// colors, images, variant specs, variants, then the product. No datastore
// level cascade is assumed.
func (r *productRepo) DeleteCascade(tx *gorm.DB, productID uuid.UUID) error {
	var variantIDs []uuid.UUID
	if err := tx.Model(&model.ProductVariant{}).
		Where("product_id = ?", productID).
		Pluck("id", &variantIDs).Error; err != nil {
		return err
	}

	if len(variantIDs) > 0 {
		if err := tx.Delete(&model.Size{}, "product_variant_id IN ?", variantIDs).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Color{}, "product_variant_id IN ?", variantIDs).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.ProductVariantImage{}, "product_variant_id IN ?", variantIDs).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.VariantSpec{}, "product_variant_id IN ?", variantIDs).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.ProductVariant{}, "id IN ?", variantIDs).Error; err != nil {
			return err
		}
	}

	if err := tx.Delete(&model.ProductSpec{}, "product_id = ?", productID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&model.Question{}, "product_id = ?", productID).Error; err != nil {
		return err
	}

	res := tx.Delete(&model.Product{}, "id = ?", productID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
