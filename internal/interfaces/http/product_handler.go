package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
)

// ProductHandler maneja el catálogo de productos y tipos, más las vistas
// proyectadas (stock y valuación derivados del libro).
type ProductHandler struct {
	catalog    *catalog.UseCase
	projection *ledger.ProjectionUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(catalogUC *catalog.UseCase, projection *ledger.ProjectionUseCase) *ProductHandler {
	return &ProductHandler{catalog: catalogUC, projection: projection}
}

// CreateType godoc
// @Summary      Crear tipo de producto
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductTypeRequest  true  "nombre único"
// @Success      201   {object}  dto.ProductTypeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/product-types [post]
func (h *ProductHandler) CreateType(c *fiber.Ctx) error {
	var in dto.ProductTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	pt, err := h.catalog.CreateType(in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pt)
}

// ListTypes godoc
// @Summary      Listar tipos de producto
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductTypeResponse
// @Router       /api/product-types [get]
func (h *ProductHandler) ListTypes(c *fiber.Ctx) error {
	list, err := h.catalog.ListTypes()
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(list)
}

// CreateProduct godoc
// @Summary      Crear producto
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "id_code único, description, unit_cost y umbrales opcionales"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.catalog.CreateProduct(c.Context(), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GetProduct godoc
// @Summary      Obtener producto
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "UUID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.catalog.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(p)
}

// ListProducts godoc
// @Summary      Listar productos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        q        query  string  false  "filtro por código o descripción"
// @Param        type_id  query  string  false  "filtro por tipo"
// @Param        limit    query  int     false  "por defecto 50"
// @Param        offset   query  int     false  "por defecto 0"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.catalog.ListProducts(c.Query("q"), c.Query("type_id"), page)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(list)
}

// UpdateProduct godoc
// @Summary      Actualizar producto (parcial)
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "UUID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "campos presentes se actualizan"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.catalog.UpdateProduct(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(p)
}

// GetProductFull godoc
// @Summary      Producto con stock y valuación proyectados
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "UUID del producto"
// @Success      200  {object}  dto.ProductFullResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/full [get]
func (h *ProductHandler) GetProductFull(c *fiber.Ctx) error {
	full, err := h.projection.Project(c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(full)
}

// ListProductsFull godoc
// @Summary      Catálogo completo proyectado
// @Description  Productos con stock y valuación, con orden global por la
//
//	columna pedida antes de paginar.
//
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        q        query  string  false  "filtro por código o descripción"
// @Param        type_id  query  string  false  "filtro por tipo"
// @Param        sort_by  query  string  false  "id_code | description | unit_cost | stock | valuation | product_type"
// @Param        order    query  string  false  "asc | desc"
// @Param        limit    query  int     false  "por defecto 50"
// @Param        offset   query  int     false  "por defecto 0"
// @Success      200  {array}  dto.ProductFullResponse
// @Router       /api/products/full [get]
func (h *ProductHandler) ListProductsFull(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.projection.ProductsFull(
		c.Query("q"), c.Query("type_id"),
		c.Query("sort_by", "id_code"), c.Query("order", "asc"),
		page,
	)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(list)
}
