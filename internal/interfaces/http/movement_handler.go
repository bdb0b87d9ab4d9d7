package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
)

// MovementHandler maneja el registro de movimientos y el historial.
type MovementHandler struct {
	uc *ledger.UseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar movimiento de inventario
// @Description  Inserta un hecho en el libro. IN/OUT con cantidad positiva,
//
//	ADJ con signo. La política de roles decide antes de escribir.
//
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, movement_type, quantity, unit_cost y moved_at opcionales"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	m, err := h.uc.RegisterMovement(c.Context(), GetUserID(c), GetRole(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// History godoc
// @Summary      Historial de movimientos de un producto
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "UUID del producto"
// @Param        order   query  string  false  "asc | desc (por defecto desc)"
// @Param        limit   query  int     false  "por defecto 50"
// @Param        offset  query  int     false  "por defecto 0"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *MovementHandler) History(c *fiber.Ctx) error {
	var in dto.HistoryRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	list, err := h.uc.History(c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(list)
}
