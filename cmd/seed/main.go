package main

import (
	"context"
	"log"

	"go-catalog-ws/internal/model"
	"go-catalog-ws/internal/repository"
	"go-catalog-ws/internal/service"
	"go-catalog-ws/pkg/database"
	"go-catalog-ws/pkg/jwt"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Seeds a development taxonomy, store and sample product through the real
// service path, and prints tokens for an admin and a seller.
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
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

	ctx := context.Background()

	admin := model.Caller{ID: uuid.New(), Role: model.RoleAdmin}
	seller := model.Caller{ID: uuid.New(), Role: model.RoleSeller}

	taxonomy := service.NewTaxonomyService(repository.NewCategoryRepo(db), repository.NewSubCategoryRepo(db), nil)
	stores := service.NewStoreService(repository.NewStoreRepo(db))
	writer := service.NewCatalogWriter(repository.NewProductRepo(db), db, nil)

	// 3. Taxonomy
	category, err := taxonomy.UpsertCategory(ctx, admin, &model.Category{
		Name:     "Clothing",
		URL:      "clothing",
		Featured: true,
	})
	if err != nil {
		log.Fatalf("Failed to seed category: %v", err)
	}

	sub, err := taxonomy.UpsertSubCategory(ctx, admin, &model.SubCategory{
		Name:       "T-Shirts",
		URL:        "t-shirts",
		CategoryID: category.ID,
	})
	if err != nil {
		log.Fatalf("Failed to seed subcategory: %v", err)
	}

	// 4. Store
	store, err := stores.UpsertStore(ctx, seller, &model.Store{
		Name: "Demo Store",
		URL:  "demo-store",
	})
	if err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	}

	// 5. Sample product with first variant
	_, err = writer.UpsertProduct(ctx, seller, &service.ProductInput{
		Name:          "Classic Cotton Tee",
		Description:   "Plain cotton t-shirt",
		VariantName:   "Classic Cotton Tee Black",
		CategoryID:    category.ID,
		SubCategoryID: sub.ID,
		Brand:         "Demo",
		SKU:           "TEE-BLK-001",
		Images:        []service.ImageInput{{URL: "https://cdn.example.com/tee-black.jpg"}},
		Colors:        []service.ColorInput{{Color: "#000000"}},
		Sizes: []service.SizeInput{
			{Size: "M", Quantity: 20, Price: decimal.NewFromInt(20), Discount: decimal.NewFromInt(10)},
			{Size: "L", Quantity: 10, Price: decimal.NewFromInt(22)},
		},
		Keywords: []string{"tee", "cotton"},
	}, store.URL)
	if err != nil {
		log.Fatalf("Failed to seed product: %v", err)
	}

	// 6. Dev tokens
	adminToken, _ := jwt.GenerateToken(admin.ID, admin.Role)
	sellerToken, _ := jwt.GenerateToken(seller.ID, seller.Role)

	log.Println("✅ Seed complete")
	log.Printf("Admin token:  %s", adminToken)
	log.Printf("Seller token: %s", sellerToken)
}
