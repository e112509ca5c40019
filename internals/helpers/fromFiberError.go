package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError mengubah error (biasanya *fiber.Error dari handler/middleware)
// menjadi response JSON standar via JsonError.
// Jika bukan *fiber.Error, fallback ke 500 tanpa membocorkan pesan asli.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, "")
}

// ErrorHandler untuk fiber.Config
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}
