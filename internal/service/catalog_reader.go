package service

import (
	"context"
	"errors"
	"fmt"

	"go-catalog-ws/internal/model"
	"go-catalog-ws/internal/pricing"
	"go-catalog-ws/internal/repository"
	"go-catalog-ws/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VariantSimplified is the variant projection used by listing pages.
type VariantSimplified struct {
	VariantID   uuid.UUID                   `json:"variant_id"`
	VariantSlug string                      `json:"variant_slug"`
	VariantName string                      `json:"variant_name"`
	Images      []model.ProductVariantImage `json:"images"`
	Sizes       []model.Size                `json:"sizes"`
}

// VariantImage pairs a link to the variant's product page with the image
// shown on the card.
type VariantImage struct {
	URL   string `json:"url"`
	Image string `json:"image"`
}

// ProductCard is the listing shape of one product.
type ProductCard struct {
	ID            uuid.UUID           `json:"id"`
	Slug          string              `json:"slug"`
	Name          string              `json:"name"`
	Rating        float64             `json:"rating"`
	Sales         int                 `json:"sales"`
	Variants      []VariantSimplified `json:"variants"`
	VariantImages []VariantImage      `json:"variant_images"`
}

// ProductListResult carries one page of cards plus pagination metadata
// computed over the full filter-matching set.
type ProductListResult struct {
	Products    []ProductCard `json:"products"`
	TotalPages  int           `json:"total_pages"`
	CurrentPage int           `json:"current_page"`
	PageSize    int           `json:"page_size"`
	TotalCount  int64         `json:"total_count"`
}

// ProductMainInfo is the narrow projection for edit forms.
type ProductMainInfo struct {
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Brand         string    `json:"brand"`
	CategoryID    uuid.UUID `json:"category_id"`
	SubCategoryID uuid.UUID `json:"sub_category_id"`
	StoreID       uuid.UUID `json:"store_id"`
}

type CatalogReaderService interface {
	GetProducts(ctx context.Context, filters repository.ProductFilters, sortBy string, page, pageSize int) (*ProductListResult, error)
	GetProductMainInfo(ctx context.Context, productID uuid.UUID) (*ProductMainInfo, error)
	GetAllStoreProducts(ctx context.Context, storeURL string) ([]model.Product, error)
	GetVariantPrice(ctx context.Context, variantID uuid.UUID, sizeID string) (*pricing.View, error)
}

type catalogReader struct {
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
}

func NewCatalogReader(pRepo repository.ProductRepository, sRepo repository.StoreRepository) CatalogReaderService {
	return &catalogReader{
		productRepo: pRepo,
		storeRepo:   sRepo,
	}
}

// displayImage applies the read-side fallback: the cached variant image,
// else the first image's URL.
func displayImage(v *model.ProductVariant) string {
	if v.VariantImage != "" {
		return v.VariantImage
	}
	if len(v.Images) > 0 {
		return v.Images[0].URL
	}
	return ""
}

func toCard(p *model.Product) ProductCard {
	card := ProductCard{
		ID:     p.ID,
		Slug:   p.Slug,
		Name:   p.Name,
		Rating: p.Rating,
		Sales:  p.Sales,
	}
	for i := range p.Variants {
		v := &p.Variants[i]
		card.Variants = append(card.Variants, VariantSimplified{
			VariantID:   v.ID,
			VariantSlug: v.Slug,
			VariantName: v.VariantName,
			Images:      v.Images,
			Sizes:       v.Sizes,
		})
		card.VariantImages = append(card.VariantImages, VariantImage{
			URL:   fmt.Sprintf("/product/%s/%s", p.Slug, v.Slug),
			Image: displayImage(v),
		})
	}
	return card
}

// GetProducts lists the catalog with filtering, sorting and pagination.
// Empty result sets come back as empty collections, never as an error.
func (s *catalogReader) GetProducts(ctx context.Context, filters repository.ProductFilters, sortBy string, page, pageSize int) (*ProductListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	skip := (page - 1) * pageSize

	products, total, err := s.productRepo.FindPage(ctx, filters, sortBy, pageSize, skip)
	if err != nil {
		return nil, apperr.Classify(err)
	}

	cards := make([]ProductCard, 0, len(products))
	for i := range products {
		cards = append(cards, toCard(&products[i]))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &ProductListResult{
		Products:    cards,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalCount:  total,
	}, nil
}

// GetProductMainInfo returns the narrow product projection, or nil when the
// product does not exist.
func (s *catalogReader) GetProductMainInfo(ctx context.Context, productID uuid.UUID) (*ProductMainInfo, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Classify(err)
	}
	return &ProductMainInfo{
		ProductID:     product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Brand:         product.Brand,
		CategoryID:    product.CategoryID,
		SubCategoryID: product.SubCategoryID,
		StoreID:       product.StoreID,
	}, nil
}

// GetAllStoreProducts lists every product of one store with full nesting,
// for the seller dashboard rather than the public catalog.
func (s *catalogReader) GetAllStoreProducts(ctx context.Context, storeURL string) ([]model.Product, error) {
	store, err := s.storeRepo.FindByURL(ctx, storeURL)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("store")
		}
		return nil, apperr.Classify(err)
	}
	return s.productRepo.FindAllByStore(ctx, store.ID)
}

// GetVariantPrice resolves the price view over the variant's live size rows.
// A nil view means there is nothing to display (no sizes, or the selected
// size does not exist).
func (s *catalogReader) GetVariantPrice(ctx context.Context, variantID uuid.UUID, sizeID string) (*pricing.View, error) {
	variant, err := s.productRepo.FindVariantByID(ctx, variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("variant")
		}
		return nil, apperr.Classify(err)
	}

	sizes := make([]pricing.Size, 0, len(variant.Sizes))
	for _, size := range variant.Sizes {
		sizes = append(sizes, pricing.Size{
			ID:       size.ID.String(),
			Size:     size.Size,
			Quantity: size.Quantity,
			Price:    size.Price,
			Discount: size.Discount,
		})
	}
	return pricing.Resolve(sizes, sizeID), nil
}
