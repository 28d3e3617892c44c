package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-catalog-ws/internal/handler"
	"go-catalog-ws/internal/middleware"
	"go-catalog-ws/internal/model"
	"go-catalog-ws/internal/repository"
	"go-catalog-ws/internal/service"
	"go-catalog-ws/internal/ws"
	"go-catalog-ws/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

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

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	storeRepo := repository.NewStoreRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	subCategoryRepo := repository.NewSubCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)

	taxonomyService := service.NewTaxonomyService(categoryRepo, subCategoryRepo, wsHub)
	storeService := service.NewStoreService(storeRepo)
	catalogWriter := service.NewCatalogWriter(productRepo, db, wsHub)
	catalogReader := service.NewCatalogReader(productRepo, storeRepo)

	taxonomyHandler := handler.NewTaxonomyHandler(taxonomyService)
	storeHandler := handler.NewStoreHandler(storeService)
	catalogHandler := handler.NewCatalogHandler(catalogWriter, catalogReader)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Catalog Engine v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Get("/categories", taxonomyHandler.GetCategories)
	api.Get("/categories/:id", taxonomyHandler.GetCategory)
	api.Get("/categories/:id/subcategories", taxonomyHandler.GetSubCategoriesForCategory)
	api.Get("/subcategories", taxonomyHandler.GetSubCategories)

	api.Get("/products", catalogHandler.GetProducts)
	api.Get("/products/:id/main-info", catalogHandler.GetProductMainInfo)
	api.Get("/variants/:id/price", catalogHandler.GetVariantPrice)
	api.Get("/stores/:storeUrl", storeHandler.GetStore)
	api.Get("/stores/:storeUrl/products", catalogHandler.GetStoreProducts)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth())

	// Taxonomy management (ADMIN)
	admin := protected.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.Post("/categories", taxonomyHandler.UpsertCategory)
	admin.Delete("/categories/:id", taxonomyHandler.DeleteCategory)
	admin.Post("/subcategories", taxonomyHandler.UpsertSubCategory)
	admin.Delete("/subcategories/:id", taxonomyHandler.DeleteSubCategory)

	// Store and product management (SELLER)
	seller := protected.Group("", middleware.RequireRole(model.RoleSeller))
	seller.Post("/stores", storeHandler.UpsertStore)
	seller.Post("/stores/:storeUrl/products", catalogHandler.UpsertProduct)
	seller.Delete("/products/:id", catalogHandler.DeleteProduct)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
