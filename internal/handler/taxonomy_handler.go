package handler

import (
	"go-catalog-ws/internal/middleware"
	"go-catalog-ws/internal/model"
	"go-catalog-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TaxonomyHandler struct {
	service service.TaxonomyService
}

func NewTaxonomyHandler(s service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{service: s}
}

func (h *TaxonomyHandler) UpsertCategory(c *fiber.Ctx) error {
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	result, err := h.service.UpsertCategory(ctx, middleware.CallerFromCtx(c), &category)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Category saved", "data": result})
}

func (h *TaxonomyHandler) GetCategories(c *fiber.Ctx) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	categories, err := h.service.GetAllCategories(ctx)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(categories)
}

func (h *TaxonomyHandler) GetCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	category, err := h.service.GetCategory(ctx, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(category)
}

func (h *TaxonomyHandler) GetSubCategoriesForCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	subs, err := h.service.GetSubCategoriesForCategory(ctx, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(subs)
}

func (h *TaxonomyHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.service.DeleteCategory(ctx, middleware.CallerFromCtx(c), id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

func (h *TaxonomyHandler) UpsertSubCategory(c *fiber.Ctx) error {
	var sub model.SubCategory
	if err := c.BodyParser(&sub); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	result, err := h.service.UpsertSubCategory(ctx, middleware.CallerFromCtx(c), &sub)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "SubCategory saved", "data": result})
}

func (h *TaxonomyHandler) GetSubCategories(c *fiber.Ctx) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	subs, err := h.service.GetAllSubCategories(ctx)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(subs)
}

func (h *TaxonomyHandler) DeleteSubCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid subcategory ID"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.service.DeleteSubCategory(ctx, middleware.CallerFromCtx(c), id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "SubCategory deleted"})
}
