package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/accupos-api/internal/application/dto"
	"github.com/jhoicas/accupos-api/internal/domain"
)

// statusFor traduce un error de dominio a status HTTP y código de cliente.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return fiber.StatusBadRequest, dto.CodeProductNotFound
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusBadRequest, dto.CodeInsufficientStock
	case errors.Is(err, domain.ErrInsufficientPayment):
		return fiber.StatusBadRequest, dto.CodeInsufficientPayment
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.CodeValidation
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.CodeNotFound
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.CodeDuplicate
	default:
		return fiber.StatusInternalServerError, dto.CodePersistence
	}
}

// respondError escribe {"error","code"} con el status correspondiente.
func respondError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	return c.Status(status).JSON(dto.ErrorResponse{Error: err.Error(), Code: code})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg, Code: dto.CodeValidation})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: msg, Code: dto.CodeNotFound})
}

// paramID lee :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}
