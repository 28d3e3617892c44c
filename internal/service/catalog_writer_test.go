package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go-catalog-ws/internal/model"
	"go-catalog-ws/internal/repository"
	"go-catalog-ws/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func validInput(category *model.Category, sub *model.SubCategory) *ProductInput {
	return &ProductInput{
		ProductID:     uuid.New(),
		VariantID:     uuid.New(),
		Name:          "Running Shoe",
		Description:   "A running shoe",
		VariantName:   "Running Shoe Red",
		CategoryID:    category.ID,
		SubCategoryID: sub.ID,
		Brand:         "Acme",
		SKU:           "SHOE-RED-1",
		Images: []ImageInput{
			{URL: "https://cdn.example.com/images/shoe-red-front.jpg"},
			{URL: "https://cdn.example.com/images/shoe-red-side.jpg"},
		},
		Colors: []ColorInput{{Color: "#ff0000"}},
		Sizes: []SizeInput{
			{Size: "42", Quantity: 10, Price: decimal.NewFromInt(50), Discount: decimal.NewFromInt(20)},
			{Size: "43", Quantity: 5, Price: decimal.NewFromInt(50)},
		},
		ProductSpecs: []SpecInput{{Name: "material", Value: "mesh"}},
		VariantSpecs: []SpecInput{{Name: "colorway", Value: "red"}},
		Keywords:     []string{"running", "shoe"},
		Questions:    []QuestionInput{{Question: "Is it waterproof?", Answer: "No"}},
	}
}

func TestUpsertProduct_CreatesProductWithFirstVariant(t *testing.T) {
	db := setupTestDB(t)
	seller, store, category, sub := seedTaxonomyAndStore(t, db)
	writer := NewCatalogWriter(repository.NewProductRepo(db), db, nil)

	in := validInput(category, sub)
	product, err := writer.UpsertProduct(context.Background(), seller, in, store.URL)
	if err != nil {
		t.Fatalf("UpsertProduct() error = %v", err)
	}

	if product.Slug != "running-shoe" {
		t.Errorf("expected product slug running-shoe, got %q", product.Slug)
	}
	if product.StoreID != store.ID {
		t.Errorf("product not linked to store")
	}

	var variant model.ProductVariant
	if err := db.Preload("Images").Preload("Colors").Preload("Sizes").Preload("Specs").
		First(&variant, "product_id = ?", product.ID).Error; err != nil {
		t.Fatalf("variant not persisted: %v", err)
	}
	if variant.Slug != "running-shoe-red" {
		t.Errorf("expected variant slug running-shoe-red, got %q", variant.Slug)
	}
	if variant.Keywords != "running,shoe" {
		t.Errorf("expected joined keywords, got %q", variant.Keywords)
	}
	// Derived display image is the first image's URL.
	if variant.VariantImage != in.Images[0].URL {
		t.Errorf("expected derived variant image %q, got %q", in.Images[0].URL, variant.VariantImage)
	}
	if len(variant.Images) != 2 || len(variant.Colors) != 1 || len(variant.Sizes) != 2 || len(variant.Specs) != 1 {
		t.Errorf("unexpected child counts: %d images, %d colors, %d sizes, %d specs",
			len(variant.Images), len(variant.Colors), len(variant.Sizes), len(variant.Specs))
	}
	if variant.Images[0].Alt != "shoe-red-front.jpg" {
		t.Errorf("expected alt derived from last path segment, got %q", variant.Images[0].Alt)
	}

	if n := countRows(t, db, &model.ProductSpec{}); n != 1 {
		t.Errorf("expected 1 product spec, got %d", n)
	}
	if n := countRows(t, db, &model.Question{}); n != 1 {
		t.Errorf("expected 1 question, got %d", n)
	}
}

func TestUpsertProduct_ExplicitVariantImageWins(t *testing.T) {
	db := setupTestDB(t)
	seller, store, category, sub := seedTaxonomyAndStore(t, db)
	writer := NewCatalogWriter(repository.NewProductRepo(db), db, nil)

	in := validInput(category, sub)
	in.VariantImage = "https://cdn.example.com/images/override.jpg"
	product, err := writer.UpsertProduct(context.Background(), seller, in, store.URL)
	if err != nil {
		t.Fatalf("UpsertProduct() error = %v", err)
	}

	var variant model.ProductVariant
	if err := db.First(&variant, "product_id = ?", product.ID).Error; err != nil {
		t.Fatalf("variant not persisted: %v", err)
	}
	if variant.VariantImage != in.VariantImage {
		t.Errorf("expected override %q, got %q", in.VariantImage, variant.VariantImage)
	}
}

func TestUpsertProduct_AddsVariantToExistingProduct(t *testing.T) {
	db := setupTestDB(t)
	seller, store, category, sub := seedTaxonomyAndStore(t, db)
	writer := NewCatalogWriter(repository.NewProductRepo(db), db, nil)
	ctx := context.Background()

	first := validInput(category, sub)
	if _, err := writer.UpsertProduct(ctx, seller, first, store.URL); err != nil {
		t.Fatalf("first UpsertProduct() error = %v", err)
	}

	second := validInput(category, sub)
	second.ProductID = first.ProductID
	second.VariantID = uuid.New()
	second.VariantName = "Running Shoe Blue"
	second.Colors = []ColorInput{{Color: "#0000ff"}}
	if _, err := writer.UpsertProduct(ctx, seller, second, store.URL); err != nil {
		t.Fatalf("second UpsertProduct() error = %v", err)
	}

	if n := countRows(t, db, &model.Product{}); n != 1 {
		t.Fatalf("expected 1 product row, got %d", n)
	}

	var variants []model.ProductVariant
	if err := db.Order("created_at").Find(&variants, "product_id = ?", first.ProductID).Error; err != nil {
		t.Fatalf("failed to load variants: %v", err)
	}
	if len(variants) != 2 {
		t.Fatalf("expected 2 variant rows, got %d", len(variants))
	}
	if variants[0].Slug == variants[1].Slug {
		t.Errorf("variant slugs must be unique, both %q", variants[0].Slug)
	}
}

func TestUpsertProduct_SlugSuffixSequence(t *testing.T) {
	db := setupTestDB(t)
	seller, store, category, sub := seedTaxonomyAndStore(t, db)
	writer := NewCatalogWriter(repository.NewProductRepo(db), db, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		in := validInput(category, sub)
		if _, err := writer.UpsertProduct(ctx, seller, in, store.URL); err != nil {
			t.Fatalf("UpsertProduct() %d error = %v", i, err)
		}
	}

	var slugs []string
	if err := db.Model(&model.Product{}).Order("created_at").Pluck("slug", &slugs).Error; err != nil {
		t.Fatalf("failed to load slugs: %v", err)
	}
	want := []string{"running-shoe", "running-shoe-1", "running-shoe-2"}
	if fmt.Sprint(slugs) != fmt.Sprint(want) {
		t.Errorf("slug sequence = %v, want %v", slugs, want)
	}
}

func TestUpsertProduct_AuthorizationGates(t *testing.T) {
	db := setupTestDB(t)
	_, store, category, sub := seedTaxonomyAndStore(t, db)
	writer := NewCatalogWriter(repository.NewProductRepo(db), db, nil)
	ctx := context.Background()

	in := validInput(category, sub)

	_, err := writer.UpsertProduct(ctx, model.Caller{}, in, store.URL)
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}

	user := model.Caller{ID: uuid.New(), Role: model.RoleUser}
	_, err = writer.UpsertProduct(ctx, user, in, store.URL)
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	if n := countRows(t, db, &model.Product{}); n != 0 {
		t.Errorf("no product row may be written, got %d", n)
	}
}

func TestUpsertProduct_StoreOwnershipEnforced(t *testing.T) {
	db := setupTestDB(t)
	_, store, category, sub := seedTaxonomyAndStore(t, db)
	writer := NewCatalogWriter(repository.NewProductRepo(db), db, nil)

	// A different seller cannot write into a store they do not own.
	intruder := model.Caller{ID: uuid.New(), Role: model.RoleSeller}
	_, err := writer.UpsertProduct(context.Background(), intruder, validInput(category, sub), store.URL)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign store, got %v", err)
	}
}

func TestUpsertProduct_ValidationRejects(t *testing.T) {
	db := setupTestDB(t)
	seller, store, category, sub := seedTaxonomyAndStore(t, db)
	writer := NewCatalogWriter(repository.NewProductRepo(db), db, nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*ProductInput)
	}{
		{"nil sizes", func(in *ProductInput) { in.Sizes = nil }},
		{"nil colors", func(in *ProductInput) { in.Colors = nil }},
		{"nil images", func(in *ProductInput) { in.Images = nil }},
		{"missing name", func(in *ProductInput) { in.Name = "" }},
		{"missing category", func(in *ProductInput) { in.CategoryID = uuid.Nil }},
		{"zero price", func(in *ProductInput) { in.Sizes[0].Price = decimal.Zero }},
		{"discount above 100", func(in *ProductInput) { in.Sizes[0].Discount = decimal.NewFromInt(101) }},
		{"too many keywords", func(in *ProductInput) {
			in.Keywords = make([]string, model.MaxKeywords+1)
		}},
	}
	for _, tc := range cases {
		in := validInput(category, sub)
		tc.mutate(in)
		if _, err := writer.UpsertProduct(ctx, seller, in, store.URL); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}

	if n := countRows(t, db, &model.Product{}); n != 0 {
		t.Errorf("no product row may be written, got %d", n)
	}
}

func TestUpsertProduct_AtomicRollbackOnBadSubCategory(t *testing.T) {
	db := setupTestDB(t)
	seller, store, category, sub := seedTaxonomyAndStore(t, db)
	writer := NewCatalogWriter(repository.NewProductRepo(db), db, nil)

	in := validInput(category, sub)
	in.SubCategoryID = uuid.New() // does not resolve
	_, err := writer.UpsertProduct(context.Background(), seller, in, store.URL)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	for _, value := range []interface{}{
		&model.Product{}, &model.ProductVariant{}, &model.ProductVariantImage{},
		&model.Color{}, &model.Size{}, &model.ProductSpec{}, &model.VariantSpec{}, &model.Question{},
	} {
		if n := countRows(t, db, value); n != 0 {
			t.Errorf("expected no %T rows after rollback, got %d", value, n)
		}
	}
}

func TestUpsertProduct_SubCategoryMustBelongToCategory(t *testing.T) {
	db := setupTestDB(t)
	seller, store, _, sub := seedTaxonomyAndStore(t, db)
	writer := NewCatalogWriter(repository.NewProductRepo(db), db, nil)

	other := &model.Category{Name: "Shoes", URL: "shoes"}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("failed to seed second category: %v", err)
	}

	in := validInput(other, sub) // sub belongs to the first category
	_, err := writer.UpsertProduct(context.Background(), seller, in, store.URL)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected ErrValidation for mismatched taxonomy, got %v", err)
	}
}

func TestDeleteProduct_CascadesAtomically(t *testing.T) {
	db := setupTestDB(t)
	seller, store, category, sub := seedTaxonomyAndStore(t, db)
	writer := NewCatalogWriter(repository.NewProductRepo(db), db, nil)
	ctx := context.Background()

	in := validInput(category, sub)
	product, err := writer.UpsertProduct(ctx, seller, in, store.URL)
	if err != nil {
		t.Fatalf("UpsertProduct() error = %v", err)
	}

	if err := writer.DeleteProduct(ctx, seller, product.ID); err != nil {
		t.Fatalf("DeleteProduct() error = %v", err)
	}

	for _, value := range []interface{}{
		&model.Product{}, &model.ProductVariant{}, &model.ProductVariantImage{},
		&model.Color{}, &model.Size{}, &model.ProductSpec{}, &model.VariantSpec{}, &model.Question{},
	} {
		if n := countRows(t, db, value); n != 0 {
			t.Errorf("expected no %T rows after cascade, got %d", value, n)
		}
	}
}

func TestDeleteProduct_NotFound(t *testing.T) {
	db := setupTestDB(t)
	writer := NewCatalogWriter(repository.NewProductRepo(db), db, nil)

	seller := model.Caller{ID: uuid.New(), Role: model.RoleSeller}
	err := writer.DeleteProduct(context.Background(), seller, uuid.New())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
