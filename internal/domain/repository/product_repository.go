package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByIDCode(idCode string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE)
	// para serializar operaciones compuestas sobre el mismo producto.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(q string, typeID string, limit, offset int) ([]*entity.Product, error)
}

// ProductTypeRepository define el puerto de persistencia para ProductType (DIP).
type ProductTypeRepository interface {
	Create(pt *entity.ProductType) error
	GetByName(name string) (*entity.ProductType, error)
	List() ([]*entity.ProductType, error)
}
