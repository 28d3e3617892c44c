package service

import (
	"testing"

	"go-catalog-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// An in-memory SQLite database exists per connection.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
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
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// seedTaxonomyAndStore creates the fixtures the writer needs: a category,
// a subcategory under it, and a store owned by the returned seller.
func seedTaxonomyAndStore(t *testing.T, db *gorm.DB) (model.Caller, *model.Store, *model.Category, *model.SubCategory) {
	t.Helper()

	seller := model.Caller{ID: uuid.New(), Role: model.RoleSeller}

	category := &model.Category{Name: "Clothing", URL: "clothing"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	sub := &model.SubCategory{Name: "T-Shirts", URL: "t-shirts", CategoryID: category.ID}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to seed subcategory: %v", err)
	}

	store := &model.Store{Name: "Demo Store", URL: "demo-store", OwnerUserID: seller.ID}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	return seller, store, category, sub
}

func countRows(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(value).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}
