package handler

import (
	"strconv"

	"go-catalog-ws/internal/middleware"
	"go-catalog-ws/internal/repository"
	"go-catalog-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	writer service.CatalogWriterService
	reader service.CatalogReaderService
}

func NewCatalogHandler(writer service.CatalogWriterService, reader service.CatalogReaderService) *CatalogHandler {
	return &CatalogHandler{writer: writer, reader: reader}
}

func (h *CatalogHandler) UpsertProduct(c *fiber.Ctx) error {
	var input service.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	product, err := h.writer.UpsertProduct(ctx, middleware.CallerFromCtx(c), &input, c.Params("storeUrl"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product saved", "data": product})
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.writer.DeleteProduct(ctx, middleware.CallerFromCtx(c), id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// parseFilters builds the listing filters from query params. Unknown or
// malformed values fall back to "not filtered".
func parseFilters(c *fiber.Ctx) repository.ProductFilters {
	var filters repository.ProductFilters
	if id, err := uuid.Parse(c.Query("category")); err == nil {
		filters.CategoryID = id
	}
	if id, err := uuid.Parse(c.Query("subCategory")); err == nil {
		filters.SubCategoryID = id
	}
	filters.OfferTag = c.Query("offerTag")
	filters.Size = c.Query("size")
	filters.Color = c.Query("color")
	filters.Brand = c.Query("brand")
	filters.OnSale = c.Query("onSale") == "true"
	filters.OnDiscount = c.Query("onDiscount") == "true"
	return filters
}

func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "10"))

	ctx, cancel := requestCtx(c)
	defer cancel()

	result, err := h.reader.GetProducts(ctx, parseFilters(c), c.Query("sortBy"), page, pageSize)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(result)
}

func (h *CatalogHandler) GetProductMainInfo(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	info, err := h.reader.GetProductMainInfo(ctx, id)
	if err != nil {
		return respondErr(c, err)
	}
	if info == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.JSON(info)
}

func (h *CatalogHandler) GetStoreProducts(c *fiber.Ctx) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	products, err := h.reader.GetAllStoreProducts(ctx, c.Params("storeUrl"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(products)
}

func (h *CatalogHandler) GetVariantPrice(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	view, err := h.reader.GetVariantPrice(ctx, id, c.Query("sizeId"))
	if err != nil {
		return respondErr(c, err)
	}
	if view == nil {
		// No sizes, or the selected size does not exist: nothing to display.
		return c.JSON(fiber.Map{})
	}
	return c.JSON(view)
}
