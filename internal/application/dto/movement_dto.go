package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/movements.
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id"`
	Kind      string           `json:"movement_type"`
	Quantity  int64            `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason    string           `json:"movement_reason,omitempty"`
	Note      string           `json:"note,omitempty"`
	MovedAt   *time.Time       `json:"moved_at,omitempty"`
}

// MovementResponse movimiento del libro.
type MovementResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Kind      string           `json:"movement_type"`
	Reason    string           `json:"movement_reason,omitempty"`
	Quantity  int64            `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost"`
	Note      string           `json:"note,omitempty"`
	MovedAt   time.Time        `json:"moved_at"`
}

// HistoryRequest query para GET /api/products/:id/movements.
type HistoryRequest struct {
	Order string `query:"order"` // asc | desc (por defecto desc)
	PageRequest
}

// DiscrepancyResponse discrepancia calculada, nunca persistida.
type DiscrepancyResponse struct {
	ProductID   string           `json:"product_id"`
	IDCode      string           `json:"id_code"`
	Description string           `json:"description"`
	Type        string           `json:"discrepancy_type"`
	Detail      string           `json:"detail"`
	Stock       int64            `json:"stock"`
	UnitCost    *decimal.Decimal `json:"unit_cost"`
}

// ResolveRequest body para POST /api/discrepancies/resolve.
type ResolveRequest struct {
	ProductID       string `json:"product_id"`
	DiscrepancyType string `json:"discrepancy_type"`
	Note            string `json:"note,omitempty"`
}

// ResolutionResponse resolución registrada con su snapshot.
type ResolutionResponse struct {
	ID              string           `json:"id"`
	ProductID       string           `json:"product_id"`
	DiscrepancyType string           `json:"discrepancy_type"`
	Note            string           `json:"note,omitempty"`
	StockAt         int64            `json:"stock_at"`
	UnitCostAt      *decimal.Decimal `json:"unit_cost_at"`
	ResolvedBy      string           `json:"resolved_by"`
	ResolvedAt      time.Time        `json:"resolved_at"`
}
