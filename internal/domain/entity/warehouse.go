package entity

import "time"

// Warehouse bodega de referencia para traslados. El stock global nunca se
// particiona por bodega: el par TRANSFER_OUT/TRANSFER_IN existe para
// trazabilidad, no para mover el total.
type Warehouse struct {
	ID        string
	Code      string // único
	Name      string
	CreatedAt time.Time
}

// Transfer registro de auditoría de un traslado entre bodegas, confirmado en
// la misma transacción que su par de movimientos.
type Transfer struct {
	ID              string
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        int64
	Notes           string
	CreatedAt       time.Time
	CreatedBy       string
}
