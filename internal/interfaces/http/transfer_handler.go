package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/transfers"
)

// TransferHandler maneja bodegas y traslados.
type TransferHandler struct {
	uc *transfers.UseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfers.UseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar traslado entre bodegas
// @Description  Verifica stock suficiente y emite el par
//
//	TRANSFER_OUT/TRANSFER_IN más el registro de auditoría en una
//	transacción. El stock global queda igual.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "product_id, from/to warehouse, quantity"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	t, err := h.uc.CreateTransfer(c.Context(), GetUserID(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// List godoc
// @Summary      Listar traslados
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "por defecto 50"
// @Param        offset  query  int  false  "por defecto 0"
// @Success      200  {array}  dto.TransferResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.uc.ListTransfers(page)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(list)
}

// CreateWarehouse godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WarehouseRequest  true  "code único y nombre"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *TransferHandler) CreateWarehouse(c *fiber.Ctx) error {
	var in dto.WarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	w, err := h.uc.CreateWarehouse(in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(w)
}

// ListWarehouses godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WarehouseResponse
// @Router       /api/warehouses [get]
func (h *TransferHandler) ListWarehouses(c *fiber.Ctx) error {
	list, err := h.uc.ListWarehouses()
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(list)
}
