package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest body para POST /api/sales. El producto puede referirse
// por id o por id_code. UnitPrice nulo usa el costo del producto (o 0).
type RecordSaleRequest struct {
	ProductID string           `json:"product_id,omitempty"`
	IDCode    string           `json:"id_code,omitempty"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Customer  string           `json:"customer,omitempty"`
	Note      string           `json:"note,omitempty"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta registrada.
type SaleResponse struct {
	ID        string             `json:"id"`
	Customer  string             `json:"customer,omitempty"`
	Note      string             `json:"note,omitempty"`
	Total     decimal.Decimal    `json:"total"`
	CreatedAt time.Time          `json:"created_at"`
	Items     []SaleItemResponse `json:"items"`
}
