package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// Órdenes de listado del historial.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// MovementRepository define el puerto del libro de movimientos (DIP).
// Solo inserción y lectura: el libro es append-only por contrato.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// ListByProduct pagina el historial ordenado por fecha efectiva con el
	// orden de inserción como desempate. Secuencia finita y reiniciable.
	ListByProduct(productID, order string, limit, offset int) ([]*entity.Movement, error)
	// StockOf pliega el historial completo de un producto en SQL
	// (SUM con el signo de ledger.Sign). Historial vacío devuelve 0.
	StockOf(productID string) (int64, error)
	// StockByProducts versión por lote, equivalente a StockOf por id:
	// nunca mezcla productos. Ids sin movimientos no aparecen en el mapa.
	StockByProducts(productIDs []string) (map[string]int64, error)
}

// ResolutionRepository define el puerto del diario de resoluciones (DIP).
// Append-only: no existe update ni delete.
type ResolutionRepository interface {
	Create(resolution *entity.Resolution) error
	ListAll() ([]*entity.Resolution, error)
}
