package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
)

// DiscrepancyHandler maneja la detección y resolución de discrepancias.
type DiscrepancyHandler struct {
	projection *ledger.ProjectionUseCase
}

// NewDiscrepancyHandler construye el handler.
func NewDiscrepancyHandler(projection *ledger.ProjectionUseCase) *DiscrepancyHandler {
	return &DiscrepancyHandler{projection: projection}
}

// List godoc
// @Summary      Discrepancias vigentes
// @Description  Recalcula las discrepancias sobre el estado actual. Las
//
//	resoluciones solo suprimen mientras su snapshot coincida exacto.
//
// @Tags         discrepancies
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DiscrepancyResponse
// @Router       /api/discrepancies [get]
func (h *DiscrepancyHandler) List(c *fiber.Ctx) error {
	list, err := h.projection.Discrepancies()
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(list)
}

// Resolve godoc
// @Summary      Resolver una discrepancia
// @Description  Registra el reconocimiento anclado al snapshot actual del
//
//	producto. Idempotente mientras el snapshot no cambie.
//
// @Tags         discrepancies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResolveRequest  true  "product_id, discrepancy_type, nota opcional"
// @Success      201   {object}  dto.ResolutionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/discrepancies/resolve [post]
func (h *DiscrepancyHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.projection.Resolve(GetUserID(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
