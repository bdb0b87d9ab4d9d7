package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Discrepancy condición calculada donde el estado proyectado viola la
// política del producto. Transitoria: nunca se persiste.
type Discrepancy struct {
	ProductID   string
	IDCode      string
	Description string
	Type        string
	Detail      string
	Stock       int64
	UnitCost    *decimal.Decimal
}

// Snapshot estado proyectado de un producto listo para evaluar.
type Snapshot struct {
	Product *entity.Product
	Stock   int64
}

// Detect evalúa cada producto contra sus cotas en orden fijo (costo,
// bajo mínimo, sobre máximo) y suprime los candidatos ya reconocidos por una
// resolución con snapshot idéntico. Determinista y sin efectos.
//
// Un producto puede emitir cero, una o varias discrepancias en una pasada.
func Detect(snapshots []Snapshot, resolutions []*entity.Resolution) []Discrepancy {
	var out []Discrepancy
	for _, s := range snapshots {
		p := s.Product
		var candidates []Discrepancy
		if costMissing(p.UnitCost) && s.Stock > 0 {
			candidates = append(candidates, Discrepancy{
				Type:   entity.DiscrepancyUnitCostMissing,
				Detail: "Stock > 0 pero unit_cost nulo o 0",
			})
		}
		if p.MinStock != nil && s.Stock < *p.MinStock {
			candidates = append(candidates, Discrepancy{
				Type:   entity.DiscrepancyBelowMinStock,
				Detail: fmt.Sprintf("Stock %d < Min %d", s.Stock, *p.MinStock),
			})
		}
		if p.MaxStock != nil && s.Stock > *p.MaxStock {
			candidates = append(candidates, Discrepancy{
				Type:   entity.DiscrepancyAboveMaxStock,
				Detail: fmt.Sprintf("Stock %d > Max %d", s.Stock, *p.MaxStock),
			})
		}
		for _, c := range candidates {
			if suppressed(resolutions, p.ID, c.Type, s.Stock, p.UnitCost) {
				continue
			}
			c.ProductID = p.ID
			c.IDCode = p.IDCode
			c.Description = p.Description
			c.Stock = s.Stock
			c.UnitCost = p.UnitCost
			out = append(out, c)
		}
	}
	return out
}

// suppressed busca una resolución del mismo producto y tipo cuyo snapshot
// (stock_at, unit_cost_at) coincida exactamente con el estado actual.
func suppressed(resolutions []*entity.Resolution, productID, dtype string, stock int64, unitCost *decimal.Decimal) bool {
	for _, r := range resolutions {
		if r.ProductID == productID && r.DiscrepancyType == dtype &&
			r.StockAt == stock && costEqual(r.UnitCostAt, unitCost) {
			return true
		}
	}
	return false
}

// costEqual igualdad exacta sobre la representación guardada: nulo solo
// coincide con nulo, cero solo con cero. Ambos estados disparan
// UNIT_COST_MISSING, así que la supresión siempre compara iguales con iguales.
func costEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func costMissing(c *decimal.Decimal) bool {
	return c == nil || c.IsZero()
}
