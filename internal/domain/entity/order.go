package entity

import "time"

// Tipos de orden.
const (
	OrderTypeSale     = "SALE"     // al completar emite OUT por línea
	OrderTypePurchase = "PURCHASE" // al completar emite IN por línea
)

// Estados del ciclo de vida de una orden. COMPLETED y CANCELLED son terminales.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusInProgress = "IN_PROGRESS"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

// Order conjunto solicitado de cantidades por producto. Completar la orden es
// una transición única: los movimientos por línea, el cambio de estado y la
// referencia de evidencia se confirman juntos o no se confirman.
type Order struct {
	ID               string
	Code             string // único
	Type             string
	Status           string
	EvidencePhotoURL string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	CreatedBy        string
	CompletedBy      string
	Items            []OrderItem
}

// OrderItem línea de una orden.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64
}

// TerminalStatus indica si el estado no admite más transiciones.
func TerminalStatus(status string) bool {
	return status == OrderStatusCompleted || status == OrderStatusCancelled
}
