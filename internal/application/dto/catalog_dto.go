package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductTypeRequest body para crear un tipo de producto.
type ProductTypeRequest struct {
	Name string `json:"name"`
}

// ProductTypeResponse tipo de producto.
type ProductTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	IDCode        string           `json:"id_code"`
	Description   string           `json:"description"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	ProductTypeID *string          `json:"product_type_id,omitempty"`
	MinStock      *int64           `json:"min_stock,omitempty"`
	MaxStock      *int64           `json:"max_stock,omitempty"`
}

// UpdateProductRequest body para PATCH /api/products/:id. Campos nil no se tocan.
type UpdateProductRequest struct {
	Description   *string          `json:"description,omitempty"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	ProductTypeID *string          `json:"product_type_id,omitempty"`
	MinStock      *int64           `json:"min_stock,omitempty"`
	MaxStock      *int64           `json:"max_stock,omitempty"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID            string           `json:"id"`
	IDCode        string           `json:"id_code"`
	Description   string           `json:"description"`
	UnitCost      *decimal.Decimal `json:"unit_cost"`
	ProductTypeID *string          `json:"product_type_id"`
	MinStock      *int64           `json:"min_stock"`
	MaxStock      *int64           `json:"max_stock"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ProductFullResponse producto con su estado proyectado (stock y valuación
// derivados del libro, nunca almacenados).
type ProductFullResponse struct {
	ID          string           `json:"id"`
	IDCode      string           `json:"id_code"`
	Description string           `json:"description"`
	UnitCost    *decimal.Decimal `json:"unit_cost"`
	Stock       int64            `json:"stock"`
	Valuation   decimal.Decimal  `json:"valuation"`
	ProductType string           `json:"product_type,omitempty"`
	MinStock    *int64           `json:"min_stock"`
	MaxStock    *int64           `json:"max_stock"`
}
