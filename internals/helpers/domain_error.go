package helper

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"kehadiranku_backend/internals/domain"
)

// DomainError turns a typed service error into the JSON error envelope.
// Unknown errors are reported as a generic 500 without leaking internals.
func DomainError(c *fiber.Ctx, err error) error {
	code := domain.HTTPStatus(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	return Error(c, code, msg)
}
