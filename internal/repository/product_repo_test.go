package repository

import (
	"context"
	"fmt"
	"testing"

	"go-catalog-ws/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.Store{},
		&model.Category{},
		&model.SubCategory{},
		&model.Product{},
		&model.ProductVariant{},
		&model.ProductVariantImage{},
		&model.Color{},
		&model.Size{},
		&model.ProductSpec{},
		&model.VariantSpec{},
		&model.Question{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return db
}

type seedOpts struct {
	brand    string
	size     string
	color    string
	keywords string
	isSale   bool
	discount decimal.Decimal
	category *model.Category
	sub      *model.SubCategory
}

func seedFilterFixture(t *testing.T, db *gorm.DB) (*model.Store, *model.Category, *model.SubCategory) {
	t.Helper()

	store := &model.Store{Name: "Store", URL: "store", OwnerUserID: uuid.New()}
	category := &model.Category{Name: "Clothing", URL: "clothing"}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	sub := &model.SubCategory{Name: "Shirts", URL: "shirts", CategoryID: category.ID}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to seed subcategory: %v", err)
	}
	return store, category, sub
}

var seedSeq int

func seedFiltered(t *testing.T, db *gorm.DB, store *model.Store, opts seedOpts) *model.Product {
	t.Helper()

	seedSeq++
	slug := fmt.Sprintf("item-%d", seedSeq)
	product := &model.Product{
		Name:          "Item " + slug,
		Description:   "desc",
		Slug:          slug,
		Brand:         opts.brand,
		StoreID:       store.ID,
		CategoryID:    opts.category.ID,
		SubCategoryID: opts.sub.ID,
		Variants: []model.ProductVariant{
			{
				VariantName: "Base",
				Slug:        slug + "-base",
				IsSale:      opts.isSale,
				Keywords:    opts.keywords,
				Colors:      []model.Color{{Name: opts.color}},
				Sizes: []model.Size{
					{Size: opts.size, Quantity: 3, Price: decimal.NewFromInt(20), Discount: opts.discount},
				},
			},
		},
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func TestFindPage_Filters(t *testing.T) {
	db := setupTestDB(t)
	store, category, sub := seedFilterFixture(t, db)

	otherCategory := &model.Category{Name: "Accessories", URL: "accessories"}
	if err := db.Create(otherCategory).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	otherSub := &model.SubCategory{Name: "Belts", URL: "belts", CategoryID: otherCategory.ID}
	if err := db.Create(otherSub).Error; err != nil {
		t.Fatalf("failed to seed subcategory: %v", err)
	}

	repo := NewProductRepo(db)
	ctx := context.Background()

	base := seedOpts{brand: "Acme", size: "M", color: "#ff0000", category: category, sub: sub}

	matching := seedFiltered(t, db, store, seedOpts{
		brand: "Nike", size: "L", color: "#0000ff", keywords: "summer,flash-sale",
		isSale: true, discount: decimal.NewFromInt(15), category: category, sub: sub,
	})
	seedFiltered(t, db, store, base)
	accessory := seedFiltered(t, db, store, seedOpts{brand: "Acme", size: "S", color: "#00ff00", category: otherCategory, sub: otherSub})

	cases := []struct {
		name    string
		filters ProductFilters
		want    uuid.UUID
	}{
		{"brand", ProductFilters{Brand: "Nike"}, matching.ID},
		{"size", ProductFilters{Size: "L"}, matching.ID},
		{"color", ProductFilters{Color: "#0000ff"}, matching.ID},
		{"on sale", ProductFilters{OnSale: true}, matching.ID},
		{"on discount", ProductFilters{OnDiscount: true}, matching.ID},
		{"offer tag", ProductFilters{OfferTag: "flash-sale"}, matching.ID},
		{"subcategory", ProductFilters{SubCategoryID: otherSub.ID}, accessory.ID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			products, total, err := repo.FindPage(ctx, tc.filters, "", 10, 0)
			if err != nil {
				t.Fatalf("FindPage() error = %v", err)
			}
			if total != 1 || len(products) != 1 {
				t.Fatalf("total=%d len=%d, want exactly one match", total, len(products))
			}
			if products[0].ID != tc.want {
				t.Errorf("matched %s, want %s", products[0].ID, tc.want)
			}
		})
	}

	// Category filter matches both in-category products.
	products, total, err := repo.FindPage(ctx, ProductFilters{CategoryID: category.ID}, "", 10, 0)
	if err != nil {
		t.Fatalf("FindPage() error = %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Errorf("category filter: total=%d len=%d, want 2/2", total, len(products))
	}

	// Combined filters intersect.
	_, total, err = repo.FindPage(ctx, ProductFilters{Brand: "Nike", Size: "M"}, "", 10, 0)
	if err != nil {
		t.Fatalf("FindPage() error = %v", err)
	}
	if total != 0 {
		t.Errorf("combined filters: total=%d, want 0", total)
	}
}

func TestFindPage_CountIndependentOfWindow(t *testing.T) {
	db := setupTestDB(t)
	store, category, sub := seedFilterFixture(t, db)
	repo := NewProductRepo(db)

	for i := 0; i < 7; i++ {
		seedFiltered(t, db, store, seedOpts{brand: "Acme", size: "M", color: "#000", category: category, sub: sub})
	}

	products, total, err := repo.FindPage(context.Background(), ProductFilters{Brand: "Acme"}, "", 3, 3)
	if err != nil {
		t.Fatalf("FindPage() error = %v", err)
	}
	if total != 7 {
		t.Errorf("total = %d, want 7 regardless of the page window", total)
	}
	if len(products) != 3 {
		t.Errorf("page length = %d, want 3", len(products))
	}

	// Offset past the end still reports the full count.
	products, total, err = repo.FindPage(context.Background(), ProductFilters{Brand: "Acme"}, "", 3, 30)
	if err != nil {
		t.Fatalf("FindPage() error = %v", err)
	}
	if total != 7 || len(products) != 0 {
		t.Errorf("past-end page: total=%d len=%d, want 7/0", total, len(products))
	}
}
