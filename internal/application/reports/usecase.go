package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
)

// ValuationPDFGenerator puerto para la representación PDF del reporte de
// valuación (implementado en infraestructura con Maroto).
type ValuationPDFGenerator interface {
	GenerateValuationPDF(ctx context.Context, products []dto.ProductFullResponse) ([]byte, error)
}

// UseCase exportaciones: CSV de productos proyectados y de discrepancias,
// y PDF de valuación. Reutiliza las mismas proyecciones de los listados,
// sin paginación.
type UseCase struct {
	projection *ledger.ProjectionUseCase
	pdf        ValuationPDFGenerator
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(projection *ledger.ProjectionUseCase, pdf ValuationPDFGenerator) *UseCase {
	return &UseCase{projection: projection, pdf: pdf}
}

// ProductsCSV exporta el catálogo proyectado con los encabezados históricos.
func (uc *UseCase) ProductsCSV(q, typeID string) ([]byte, error) {
	full, err := uc.projection.ProductsFull(q, typeID, "id_code", "asc", dto.PageRequest{Limit: -1})
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"codigo", "descripcion", "costo_unitario", "stock", "valuacion", "tipo", "min_stock", "max_stock"})
	for _, p := range full {
		cost := ""
		if p.UnitCost != nil {
			cost = p.UnitCost.String()
		}
		_ = w.Write([]string{
			p.IDCode,
			p.Description,
			cost,
			strconv.FormatInt(p.Stock, 10),
			p.Valuation.String(),
			p.ProductType,
			optInt(p.MinStock),
			optInt(p.MaxStock),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("escribir csv: %w", err)
	}
	return buf.Bytes(), nil
}

// DiscrepanciesCSV exporta las discrepancias vigentes (ya suprimidas las
// resueltas con snapshot idéntico).
func (uc *UseCase) DiscrepanciesCSV() ([]byte, error) {
	found, err := uc.projection.Discrepancies()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"codigo", "descripcion", "discrepancia", "detalle", "stock", "costo_unitario"})
	for _, d := range found {
		cost := ""
		if d.UnitCost != nil {
			cost = d.UnitCost.String()
		}
		_ = w.Write([]string{d.IDCode, d.Description, d.Type, d.Detail, strconv.FormatInt(d.Stock, 10), cost})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("escribir csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ValuationPDF genera el reporte PDF de stock y valuación por producto.
func (uc *UseCase) ValuationPDF(ctx context.Context) ([]byte, error) {
	full, err := uc.projection.ProductsFull("", "", "id_code", "asc", dto.PageRequest{Limit: -1})
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateValuationPDF(ctx, full)
}

func optInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
