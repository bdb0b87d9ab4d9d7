package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementKindIN  = "IN"  // entrada
	MovementKindOUT = "OUT" // salida
	MovementKindADJ = "ADJ" // ajuste con signo
)

// Razones conocidas de movimiento. El campo es una etiqueta libre; estas
// constantes cubren las que genera el propio sistema.
const (
	ReasonSale           = "SALE"
	ReasonOrder          = "ORDER"
	ReasonTransferOut    = "TRANSFER_OUT"
	ReasonTransferIn     = "TRANSFER_IN"
	ReasonOpeningBalance = "opening_balance"
)

// Movement es un hecho inmutable del libro: nunca se actualiza ni se borra.
// Todo el estado derivado (stock, valuación, discrepancias) es función pura
// del historial completo de movimientos del producto.
//
// Quantity se guarda tal como se recibe: IN/OUT positivos, ADJ con signo.
// El signo efectivo se aplica al proyectar (ver ledger.Sign).
// UnitCost es informativo/auditoría; la valuación usa el costo del producto.
type Movement struct {
	ID        string
	Seq       int64 // orden de inserción, solo desempate en el historial
	ProductID string
	Kind      string
	Reason    string
	Quantity  int64
	UnitCost  *decimal.Decimal
	Note      string
	MovedAt   time.Time // fecha efectiva; por defecto la de recepción
	CreatedAt time.Time
	CreatedBy string
}

// ValidMovementKind indica si el tipo pertenece al conjunto cerrado {IN,OUT,ADJ}.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementKindIN, MovementKindOUT, MovementKindADJ:
		return true
	}
	return false
}
