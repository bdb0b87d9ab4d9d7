package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// WarehouseRepository define el puerto del catálogo de bodegas (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	List() ([]*entity.Warehouse, error)
}

// TransferRepository define el puerto del registro de traslados (DIP).
// Insert-only, igual que el libro.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	List(limit, offset int) ([]*entity.Transfer, error)
}
