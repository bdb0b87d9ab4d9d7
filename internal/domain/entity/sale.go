package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale agrupa líneas de venta. Cada línea produce exactamente un movimiento
// OUT con razón SALE y nota que referencia el id de la venta; venta, líneas
// y movimientos se confirman en una sola transacción.
type Sale struct {
	ID        string
	Customer  string
	Note      string
	Total     decimal.Decimal
	CreatedAt time.Time
	CreatedBy string
	Items     []SaleItem
}

// SaleItem línea de venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
