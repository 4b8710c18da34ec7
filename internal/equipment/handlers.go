package equipment

import (
	"github.com/gofiber/fiber/v2"

	"github.com/faazahm/backend-camping/internal/shared/httpx"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware, adminMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		items, err := svc.List(c.Context())
		if err != nil {
			return httpx.Error(c, err)
		}
		return c.JSON(items)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		item, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return httpx.Error(c, err)
		}
		return c.JSON(item)
	})

	r.Post("/", authMiddleware, adminMiddleware, func(c *fiber.Ctx) error {
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		item, err := svc.Create(c.Context(), req)
		if err != nil {
			return httpx.Error(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	})

	r.Put("/:id", authMiddleware, adminMiddleware, func(c *fiber.Ctx) error {
		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		item, err := svc.Update(c.Context(), c.Params("id"), req)
		if err != nil {
			return httpx.Error(c, err)
		}
		return c.JSON(item)
	})

	r.Delete("/:id", authMiddleware, adminMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Deactivate(c.Context(), c.Params("id")); err != nil {
			return httpx.Error(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
