package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para órdenes (DIP).
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate obtiene la orden con sus líneas bloqueando la fila,
	// para que completar sea una transición única bajo concurrencia.
	GetForUpdate(id string) (*entity.Order, error)
	// Complete transiciona a COMPLETED y adjunta la evidencia. Se invoca
	// dentro de la misma transacción que los movimientos por línea.
	Complete(id, evidencePhotoURL, completedBy string, at time.Time) error
	List(limit, offset int) ([]*entity.Order, error)
}
