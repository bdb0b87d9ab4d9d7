package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductType agrupa productos por tipo (catálogo).
type ProductType struct {
	ID   string
	Name string
}

// Product es el producto del catálogo. UnitCost nulo significa "desconocido";
// MinStock/MaxStock nulos significan "sin cota". El motor del libro solo lee
// estos campos, el CRUD pertenece al catálogo.
type Product struct {
	ID            string
	IDCode        string // código único
	Description   string
	UnitCost      *decimal.Decimal
	ProductTypeID *string
	MinStock      *int64
	MaxStock      *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
