package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// stockSum pliega el historial con el signo de cada tipo: IN suma, OUT resta,
// ADJ suma con el signo que trae la cantidad. Equivale a ledger.Sign en SQL.
const stockSum = `COALESCE(SUM(CASE
	WHEN movement_type = 'IN' THEN quantity
	WHEN movement_type = 'OUT' THEN -quantity
	ELSE quantity
END), 0)`

const movementColumns = `id, seq, product_id, movement_type, COALESCE(movement_reason, ''),
	quantity, unit_cost, COALESCE(note, ''), moved_at, created_at, created_by`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
// El libro es append-only: solo INSERT y SELECT.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento. seq lo asigna la secuencia de la tabla.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, product_id, movement_type, movement_reason, quantity, unit_cost, note, moved_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.Kind, nullStr(m.Reason), m.Quantity, m.UnitCost,
		nullStr(m.Note), m.MovedAt, m.CreatedAt, nullStr(m.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por id. Devuelve nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := "SELECT " + movementColumns + " FROM movements WHERE id = $1"
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByProduct pagina el historial de un producto ordenado por fecha efectiva,
// con seq como desempate cuando las fechas coinciden.
func (r *MovementRepo) ListByProduct(productID, order string, limit, offset int) ([]*entity.Movement, error) {
	dir := "DESC"
	if order == repository.OrderAsc {
		dir = "ASC"
	}
	query := fmt.Sprintf(
		"SELECT "+movementColumns+" FROM movements WHERE product_id = $1 ORDER BY moved_at %s, seq %s LIMIT $2 OFFSET $3",
		dir, dir,
	)
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// StockOf pliega el historial completo del producto. Sin movimientos devuelve 0.
func (r *MovementRepo) StockOf(productID string) (int64, error) {
	var stock int64
	err := r.q.QueryRow(context.Background(),
		"SELECT "+stockSum+" FROM movements WHERE product_id = $1", productID).Scan(&stock)
	if err != nil {
		return 0, fmt.Errorf("stock of product: %w", err)
	}
	return stock, nil
}

// StockByProducts pliega el historial de varios productos en una sola consulta.
// Ids sin movimientos no aparecen en el mapa.
func (r *MovementRepo) StockByProducts(productIDs []string) (map[string]int64, error) {
	stocks := make(map[string]int64, len(productIDs))
	if len(productIDs) == 0 {
		return stocks, nil
	}
	rows, err := r.q.Query(context.Background(),
		"SELECT product_id, "+stockSum+" FROM movements WHERE product_id = ANY($1) GROUP BY product_id",
		productIDs)
	if err != nil {
		return nil, fmt.Errorf("stock by products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var stock int64
		if err := rows.Scan(&id, &stock); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		stocks[id] = stock
	}
	return stocks, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var createdBy *string
	err := row.Scan(&m.ID, &m.Seq, &m.ProductID, &m.Kind, &m.Reason,
		&m.Quantity, &m.UnitCost, &m.Note, &m.MovedAt, &m.CreatedAt, &createdBy)
	if err != nil {
		return nil, err
	}
	m.CreatedBy = strVal(createdBy)
	return &m, nil
}
