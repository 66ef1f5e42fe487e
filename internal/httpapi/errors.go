package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mesh-intelligence/datascope/pkg/types"
)

// errorHandler maps domain errors onto HTTP statuses. Anything unrecognized
// becomes a 500 with a generic body so storage details never leak to callers.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code, message = fiberErr.Code, fiberErr.Message
	case errors.Is(err, types.ErrMissingUser):
		code, message = fiber.StatusBadRequest, types.ErrMissingUser.Error()
	case errors.Is(err, types.ErrNotFound):
		code, message = fiber.StatusNotFound, "not found"
	case errors.Is(err, types.ErrConflict):
		code, message = fiber.StatusConflict, "already exists"
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}
