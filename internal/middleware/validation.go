package middleware

import (
	"sanctuary/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidatedVideoIDKey is the fiber.Ctx locals key for a checked :videoId.
const ValidatedVideoIDKey = "validated_video_id"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	if v == nil {
		v = validation.NewValidator()
	}
	return &ValidationMiddleware{validator: v}
}

// ValidateVideoID rejects a malformed :videoId before it reaches a handler.
func (vm *ValidationMiddleware) ValidateVideoID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		videoID := c.Params("videoId")
		if errs := vm.validator.ValidateVideoID(videoID); len(errs) > 0 {
			return errs
		}
		c.Locals(ValidatedVideoIDKey, videoID)
		return c.Next()
	}
}
