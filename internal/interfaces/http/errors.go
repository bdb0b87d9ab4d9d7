package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// mapError traduce un error de dominio al par (status, code) de la API.
// Los errores no mapeados se responden como 500 INTERNAL.
func mapError(c *fiber.Ctx, err error) error {
	type mapping struct {
		sentinel error
		status   int
		code     string
	}
	mappings := []mapping{
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrInvalidMovementKind, fiber.StatusBadRequest, "INVALID_KIND"},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{domain.ErrNeedsApproval, fiber.StatusForbidden, "NEEDS_APPROVAL"},
		{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
		{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
		{domain.ErrAlreadyCompleted, fiber.StatusConflict, "ALREADY_COMPLETED"},
		{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	}
	for _, m := range mappings {
		if errors.Is(err, m.sentinel) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.sentinel.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
