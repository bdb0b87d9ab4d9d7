// Package ledger contiene la lógica pura del libro de inventario: proyección
// de stock/valuación por plegado del historial y detección de discrepancias.
// Sin dependencias de persistencia; los adaptadores SQL replican el mismo
// plegado con SUM(CASE ...) para los listados.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Projection estado derivado de un producto. No se persiste jamás.
type Projection struct {
	Stock     int64
	Valuation decimal.Decimal
}

// Sign devuelve el signo efectivo de un tipo de movimiento:
// IN=+1, OUT=-1, ADJ=+1 (el ajuste viaja con signo en la cantidad,
// un ajuste negativo requiere cantidad negativa).
func Sign(kind string) int64 {
	if kind == entity.MovementKindOUT {
		return -1
	}
	return 1
}

// Project pliega el historial completo de movimientos de un producto.
// La suma es conmutativa: el orden del historial no importa. Historial
// vacío proyecta stock 0 y valuación 0.
//
// La valuación usa el costo unitario del Producto (nulo cuenta como 0);
// el costo a nivel de movimiento es solo auditoría.
func Project(movements []*entity.Movement, unitCost *decimal.Decimal) Projection {
	var stock int64
	for _, m := range movements {
		stock += Sign(m.Kind) * m.Quantity
	}
	return Projection{Stock: stock, Valuation: Valuation(stock, unitCost)}
}

// Valuation calcula stock × (unit_cost ?? 0).
func Valuation(stock int64, unitCost *decimal.Decimal) decimal.Decimal {
	if unitCost == nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(stock).Mul(*unitCost)
}
