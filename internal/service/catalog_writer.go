package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-catalog-ws/internal/model"
	"go-catalog-ws/internal/repository"
	"go-catalog-ws/internal/slug"
	"go-catalog-ws/internal/ws"
	"go-catalog-ws/pkg/apperr"
	"go-catalog-ws/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// slugRetryLimit bounds reallocation attempts when an insert loses the
// slug check-then-insert race.
const slugRetryLimit = 3

// ProductInput is the flat upsert payload: one product plus one variant
// with its child collections.
type ProductInput struct {
	ProductID uuid.UUID `json:"product_id"`
	VariantID uuid.UUID `json:"variant_id"`

	Name               string `json:"name" validate:"required"`
	Description        string `json:"description" validate:"required"`
	VariantName        string `json:"variant_name" validate:"required"`
	VariantDescription string `json:"variant_description"`

	CategoryID    uuid.UUID `json:"category_id" validate:"uuid_required"`
	SubCategoryID uuid.UUID `json:"sub_category_id" validate:"uuid_required"`

	Brand        string `json:"brand"`
	SKU          string `json:"sku"`
	IsSale       bool   `json:"is_sale"`
	SaleEndDate  string `json:"sale_end_date"`
	VariantImage string `json:"variant_image"`

	Images       []ImageInput    `json:"images" validate:"required,min=1,dive"`
	Colors       []ColorInput    `json:"colors" validate:"required,min=1,dive"`
	Sizes        []SizeInput     `json:"sizes" validate:"required,min=1,dive"`
	ProductSpecs []SpecInput     `json:"product_specs" validate:"dive"`
	VariantSpecs []SpecInput     `json:"variant_specs" validate:"dive"`
	Keywords     []string        `json:"keywords" validate:"max=10"`
	Questions    []QuestionInput `json:"questions" validate:"dive"`
}

type ImageInput struct {
	URL string `json:"url" validate:"required"`
}

type ColorInput struct {
	Color string `json:"color" validate:"required"`
}

type SizeInput struct {
	Size     string          `json:"size" validate:"required"`
	Quantity int             `json:"quantity" validate:"min=0"`
	Price    decimal.Decimal `json:"price"`
	Discount decimal.Decimal `json:"discount"`
}

type SpecInput struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

type QuestionInput struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type CatalogWriterService interface {
	UpsertProduct(ctx context.Context, caller model.Caller, input *ProductInput, storeURL string) (*model.Product, error)
	DeleteProduct(ctx context.Context, caller model.Caller, productID uuid.UUID) error
}

type catalogWriter struct {
	productRepo repository.ProductRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewCatalogWriter(pRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub) CatalogWriterService {
	return &catalogWriter{
		productRepo: pRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *catalogWriter) publish(event string, data interface{}) {
	if s.wsHub == nil {
		return
	}
	go s.wsHub.Publish(event, data)
}

var hundredPct = decimal.NewFromInt(100)

func validateSizes(sizes []SizeInput) error {
	for _, size := range sizes {
		if !size.Price.IsPositive() {
			return apperr.Validation("size price must be greater than zero")
		}
		if size.Discount.IsNegative() || size.Discount.GreaterThan(hundredPct) {
			return apperr.Validation("size discount must be between 0 and 100")
		}
	}
	return nil
}

// imageAlt derives alt text from the URL's last path segment.
func imageAlt(url string) string {
	parts := strings.Split(url, "/")
	return parts[len(parts)-1]
}

// composeVariant assembles the variant row and its child create lists from
// the flat input arrays. The denormalized variant image is fixed here: the
// caller's override wins, otherwise the first image's URL is stored.
func composeVariant(in *ProductInput, variantSlug string) *model.ProductVariant {
	variant := &model.ProductVariant{
		BaseModel:          model.BaseModel{ID: in.VariantID},
		VariantName:        in.VariantName,
		VariantDescription: in.VariantDescription,
		Slug:               variantSlug,
		SKU:                in.SKU,
		IsSale:             in.IsSale,
		Keywords:           strings.Join(in.Keywords, model.KeywordSeparator),
		VariantImage:       in.VariantImage,
	}
	if in.IsSale {
		variant.SaleEndDate = in.SaleEndDate
	}
	if variant.VariantImage == "" && len(in.Images) > 0 {
		variant.VariantImage = in.Images[0].URL
	}

	for _, img := range in.Images {
		variant.Images = append(variant.Images, model.ProductVariantImage{
			URL: img.URL,
			Alt: imageAlt(img.URL),
		})
	}
	for _, color := range in.Colors {
		variant.Colors = append(variant.Colors, model.Color{Name: color.Color})
	}
	for _, size := range in.Sizes {
		variant.Sizes = append(variant.Sizes, model.Size{
			Size:     size.Size,
			Quantity: size.Quantity,
			Price:    size.Price,
			Discount: size.Discount,
		})
	}
	for _, spec := range in.VariantSpecs {
		variant.Specs = append(variant.Specs, model.VariantSpec{Name: spec.Name, Value: spec.Value})
	}
	return variant
}

func composeProduct(in *ProductInput, productSlug string, storeID uuid.UUID, variant *model.ProductVariant) *model.Product {
	product := &model.Product{
		BaseModel:     model.BaseModel{ID: in.ProductID},
		Name:          in.Name,
		Description:   in.Description,
		Slug:          productSlug,
		Brand:         in.Brand,
		StoreID:       storeID,
		CategoryID:    in.CategoryID,
		SubCategoryID: in.SubCategoryID,
		Variants:      []model.ProductVariant{*variant},
	}
	for _, spec := range in.ProductSpecs {
		product.Specs = append(product.Specs, model.ProductSpec{Name: spec.Name, Value: spec.Value})
	}
	for _, q := range in.Questions {
		product.Questions = append(product.Questions, model.Question{Question: q.Question, Answer: q.Answer})
	}
	return product
}

// UpsertProduct creates a product with its first variant, or adds a variant
// to an existing product, in one transaction. Slug allocation probes inside
// the same transaction and the whole upsert is retried on a duplicate-key
// loss of the slug race.
func (s *catalogWriter) UpsertProduct(ctx context.Context, caller model.Caller, in *ProductInput, storeURL string) (*model.Product, error) {
	if err := requireRole(caller, model.RoleSeller); err != nil {
		return nil, err
	}
	if in == nil {
		return nil, apperr.Validation("please provide product data")
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, apperr.Validation(fmt.Sprintf("field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag))
	}
	if err := validateSizes(in.Sizes); err != nil {
		return nil, err
	}

	var result *model.Product
	var created bool
	lastErr := error(apperr.ErrDuplicate)

	for attempt := 0; attempt < slugRetryLimit; attempt++ {
		result = nil
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// Resolve the store by (url, owner): a seller can only write to
			// stores they own.
			var store model.Store
			if err := tx.First(&store, "url = ? AND owner_user_id = ?", storeURL, caller.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("store")
				}
				return err
			}

			var sub model.SubCategory
			if err := tx.First(&sub, "id = ?", in.SubCategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("subcategory")
				}
				return err
			}
			if sub.CategoryID != in.CategoryID {
				return apperr.Validation("subcategory does not belong to the given category")
			}

			alloc := slug.NewAllocator(repository.NewSlugProber(tx))
			variantSlug, err := alloc.Allocate(ctx, in.VariantName, slug.EntityProductVariant)
			if err != nil {
				return err
			}
			variant := composeVariant(in, variantSlug)

			var existing model.Product
			err = tx.First(&existing, "id = ?", in.ProductID).Error
			switch {
			case err == nil:
				// Existing product: this call adds a new variant.
				variant.ProductID = existing.ID
				if err := s.productRepo.CreateVariant(tx, variant); err != nil {
					return err
				}
				existing.Variants = []model.ProductVariant{*variant}
				result = &existing
				created = false
				return nil
			case errors.Is(err, gorm.ErrRecordNotFound):
				// New product with its first variant, one insert chain.
				productSlug, err := alloc.Allocate(ctx, in.Name, slug.EntityProduct)
				if err != nil {
					return err
				}
				product := composeProduct(in, productSlug, store.ID, variant)
				if err := s.productRepo.CreateProduct(tx, product); err != nil {
					return err
				}
				result = product
				created = true
				return nil
			default:
				return err
			}
		})
		if err == nil {
			if created {
				s.publish("product_created", result)
			} else {
				s.publish("variant_added", result)
			}
			return result, nil
		}

		classified := apperr.Classify(err)
		if errors.Is(classified, apperr.ErrDuplicate) {
			// Lost the slug race to a concurrent writer, reallocate and retry.
			lastErr = classified
			continue
		}
		return nil, classified
	}
	return nil, lastErr
}

// DeleteProduct removes a product and every dependent row in a single
// transaction.
func (s *catalogWriter) DeleteProduct(ctx context.Context, caller model.Caller, productID uuid.UUID) error {
	if err := requireRole(caller, model.RoleSeller); err != nil {
		return err
	}
	if productID == uuid.Nil {
		return apperr.Validation("please provide product id")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.productRepo.DeleteCascade(tx, productID)
	})
	if err != nil {
		return apperr.Classify(err)
	}

	s.publish("product_deleted", map[string]interface{}{"id": productID})
	return nil
}
