package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de discrepancia detectables.
const (
	DiscrepancyUnitCostMissing = "UNIT_COST_MISSING"
	DiscrepancyBelowMinStock   = "BELOW_MIN_STOCK"
	DiscrepancyAboveMaxStock   = "ABOVE_MAX_STOCK"
)

// Resolution es el reconocimiento de una discrepancia, anclado al snapshot
// exacto (stock y costo unitario) observado al resolver. Solo suprime la
// discrepancia mientras ese snapshot no cambie: cualquier movimiento
// posterior la hace reaparecer. Registro append-only.
type Resolution struct {
	ID              string
	ProductID       string
	DiscrepancyType string
	Note            string
	StockAt         int64
	UnitCostAt      *decimal.Decimal
	ResolvedBy      string
	ResolvedAt      time.Time
}
