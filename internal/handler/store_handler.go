package handler

import (
	"go-catalog-ws/internal/middleware"
	"go-catalog-ws/internal/model"
	"go-catalog-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StoreHandler struct {
	service service.StoreService
}

func NewStoreHandler(s service.StoreService) *StoreHandler {
	return &StoreHandler{service: s}
}

func (h *StoreHandler) UpsertStore(c *fiber.Ctx) error {
	var store model.Store
	if err := c.BodyParser(&store); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	result, err := h.service.UpsertStore(ctx, middleware.CallerFromCtx(c), &store)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Store saved", "data": result})
}

func (h *StoreHandler) GetStore(c *fiber.Ctx) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	store, err := h.service.GetStoreByURL(ctx, c.Params("storeUrl"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(store)
}
