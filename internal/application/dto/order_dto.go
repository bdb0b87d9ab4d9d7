package dto

import "time"

// OrderItemRequest línea para crear una orden.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Code  string             `json:"code"`
	Type  string             `json:"type"` // SALE | PURCHASE
	Items []OrderItemRequest `json:"items"`
}

// CompleteOrderRequest body para POST /api/orders/:id/complete.
type CompleteOrderRequest struct {
	EvidencePhotoURL string `json:"evidence_photo_url"`
}

// OrderItemResponse línea de orden.
type OrderItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// OrderResponse orden con líneas.
type OrderResponse struct {
	ID               string              `json:"id"`
	Code             string              `json:"code"`
	Type             string              `json:"type"`
	Status           string              `json:"status"`
	EvidencePhotoURL string              `json:"evidence_photo_url,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	Items            []OrderItemResponse `json:"items"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	ProductID       string `json:"product_id"`
	FromWarehouseID string `json:"from_warehouse_id"`
	ToWarehouseID   string `json:"to_warehouse_id"`
	Quantity        int64  `json:"quantity"`
	Notes           string `json:"notes,omitempty"`
}

// TransferResponse traslado registrado.
type TransferResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	FromWarehouseID string    `json:"from_warehouse_id"`
	ToWarehouseID   string    `json:"to_warehouse_id"`
	Quantity        int64     `json:"quantity"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// WarehouseRequest body para crear una bodega.
type WarehouseRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// WarehouseResponse bodega del catálogo.
type WarehouseResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
