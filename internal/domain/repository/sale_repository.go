package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas (DIP).
// Create persiste la venta con sus líneas; se usa dentro de la transacción
// compuesta junto con los movimientos OUT.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
}
