package booking

import (
	"github.com/gofiber/fiber/v2"

	"github.com/faazahm/backend-camping/internal/auth"
	"github.com/faazahm/backend-camping/internal/shared/httpx"
)

// RegisterRoutes mounts the user-facing booking operations.
func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		b, err := svc.Create(c.Context(), auth.CallerFromCtx(c), req)
		if err != nil {
			return httpx.Error(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(b.Response())
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		bookings, err := svc.ListByUser(c.Context(), auth.CallerFromCtx(c).UserID)
		if err != nil {
			return httpx.Error(c, err)
		}
		return c.JSON(responses(bookings))
	})

	r.Get("/:ref", authMiddleware, func(c *fiber.Ctx) error {
		b, err := svc.GetByRef(c.Context(), auth.CallerFromCtx(c), c.Params("ref"))
		if err != nil {
			return httpx.Error(c, err)
		}
		return c.JSON(b.Response())
	})

	r.Put("/:ref/equipment", authMiddleware, func(c *fiber.Ctx) error {
		var req ReplaceEquipmentRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		b, err := svc.ReplaceEquipment(c.Context(), auth.CallerFromCtx(c), c.Params("ref"), req)
		if err != nil {
			return httpx.Error(c, err)
		}
		return c.JSON(b.Response())
	})

	r.Put("/:ref/payment-proof", authMiddleware, func(c *fiber.Ctx) error {
		var req PaymentProofRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		b, err := svc.AttachPaymentProof(c.Context(), auth.CallerFromCtx(c), c.Params("ref"), req.URL)
		if err != nil {
			return httpx.Error(c, err)
		}
		return c.JSON(b.Response())
	})
}

// RegisterAdminRoutes mounts the lifecycle controls.
func RegisterAdminRoutes(r fiber.Router, svc *Service, authMiddleware, adminMiddleware fiber.Handler) {
	r.Get("/", authMiddleware, adminMiddleware, func(c *fiber.Ctx) error {
		bookings, err := svc.List(c.Context(), c.Query("status"))
		if err != nil {
			return httpx.Error(c, err)
		}
		return c.JSON(responses(bookings))
	})

	r.Put("/:ref/status", authMiddleware, adminMiddleware, func(c *fiber.Ctx) error {
		var req SetStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		b, err := svc.SetStatus(c.Context(), c.Params("ref"), req.Status)
		if err != nil {
			return httpx.Error(c, err)
		}
		return c.JSON(b.Response())
	})
}

// RegisterAvailabilityRoutes mounts the public day-by-day availability
// reads. These are unlocked: the numbers are advisory and only admission
// decides.
func RegisterAvailabilityRoutes(r fiber.Router, svc *Service) {
	r.Get("/campsites/:id", func(c *fiber.Ctx) error {
		days, err := svc.CampsiteAvailability(c.Context(), c.Params("id"), c.Query("start"), c.Query("end"))
		if err != nil {
			return httpx.Error(c, err)
		}
		return c.JSON(days)
	})

	r.Get("/equipment", func(c *fiber.Ctx) error {
		days, err := svc.EquipmentAvailability(c.Context(), c.Query("start"), c.Query("end"))
		if err != nil {
			return httpx.Error(c, err)
		}
		return c.JSON(days)
	})

	r.Get("/equipment/:id", func(c *fiber.Ctx) error {
		days, err := svc.EquipmentItemAvailability(c.Context(), c.Params("id"), c.Query("start"), c.Query("end"))
		if err != nil {
			return httpx.Error(c, err)
		}
		return c.JSON(days)
	})
}

func responses(bookings []Booking) []Response {
	out := make([]Response, len(bookings))
	for i, b := range bookings {
		out[i] = b.Response()
	}
	return out
}
