// Package httpx maps domain errors onto HTTP responses.
package httpx

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/faazahm/backend-camping/internal/shared/apperr"
	"github.com/faazahm/backend-camping/internal/shared/dates"
)

var statusByKind = map[apperr.Kind]int{
	apperr.KindInvalid:          fiber.StatusBadRequest,
	apperr.KindNotFound:         fiber.StatusNotFound,
	apperr.KindForbidden:        fiber.StatusForbidden,
	apperr.KindConflict:         fiber.StatusConflict,
	apperr.KindCapacityExceeded: fiber.StatusConflict,
}

// Error writes err as a JSON response. Domain errors map to their kind's
// status; capacity rejections include the violating day and the remaining
// quantity. Anything unrecognised is logged and reported as an opaque 500.
func Error(c *fiber.Ctx, err error) error {
	var e *apperr.Error
	if errors.As(err, &e) {
		body := fiber.Map{"error": string(e.Kind), "message": e.Message}
		if e.Kind == apperr.KindCapacityExceeded {
			body["date"] = dates.Format(e.Day)
			body["remaining"] = e.Remaining
		}
		return c.Status(statusByKind[e.Kind]).JSON(body)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	log.Printf("internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal error"})
}
