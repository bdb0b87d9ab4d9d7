package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/reports"
)

// ReportHandler maneja las exportaciones CSV y el reporte PDF.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ProductsCSV godoc
// @Summary      Exportar catálogo proyectado a CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        q        query  string  false  "filtro por código o descripción"
// @Param        type_id  query  string  false  "filtro por tipo"
// @Success      200  {string}  string
// @Router       /api/export/products.csv [get]
func (h *ReportHandler) ProductsCSV(c *fiber.Ctx) error {
	data, err := h.uc.ProductsCSV(c.Query("q"), c.Query("type_id"))
	if err != nil {
		return mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="productos.csv"`)
	return c.Send(data)
}

// DiscrepanciesCSV godoc
// @Summary      Exportar discrepancias vigentes a CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/export/discrepancies.csv [get]
func (h *ReportHandler) DiscrepanciesCSV(c *fiber.Ctx) error {
	data, err := h.uc.DiscrepanciesCSV()
	if err != nil {
		return mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="discrepancias.csv"`)
	return c.Send(data)
}

// ValuationPDF godoc
// @Summary      Reporte PDF de stock y valuación
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {string}  string
// @Router       /api/export/valuation.pdf [get]
func (h *ReportHandler) ValuationPDF(c *fiber.Ctx) error {
	data, err := h.uc.ValuationPDF(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="valuacion.pdf"`)
	return c.Send(data)
}
