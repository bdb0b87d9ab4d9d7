package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, code, type, status, COALESCE(evidence_photo_url, ''),
	created_at, updated_at, created_by, completed_by`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la orden con sus líneas. Código duplicado → ErrDuplicate.
func (r *OrderRepo) Create(order *entity.Order) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx,
		`INSERT INTO orders (id, code, type, status, evidence_photo_url, created_at, updated_at, created_by, completed_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		order.ID, order.Code, order.Type, order.Status, nullStr(order.EvidencePhotoURL),
		order.CreatedAt, order.UpdatedAt, nullStr(order.CreatedBy), nullStr(order.CompletedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create order: %w", err)
	}
	for i := range order.Items {
		item := &order.Items[i]
		_, err := r.q.Exec(ctx,
			`INSERT INTO order_items (id, order_id, product_id, quantity) VALUES ($1, $2, $3, $4)`,
			item.ID, order.ID, item.ProductID, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("create order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas. Devuelve nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.get(id, "")
}

// GetForUpdate obtiene la orden bloqueando su fila, para que la transición a
// COMPLETED sea única bajo concurrencia.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	return r.get(id, " FOR UPDATE")
}

func (r *OrderRepo) get(id, suffix string) (*entity.Order, error) {
	ctx := context.Background()
	query := "SELECT " + orderColumns + " FROM orders WHERE id = $1" + suffix
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.itemsOf(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

// Complete transiciona la orden a COMPLETED con su evidencia y autor. Se
// invoca en la misma transacción que los movimientos por línea.
func (r *OrderRepo) Complete(id, evidencePhotoURL, completedBy string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2, evidence_photo_url = $3, completed_by = $4, updated_at = $5 WHERE id = $1`,
		id, entity.OrderStatusCompleted, nullStr(evidencePhotoURL), nullStr(completedBy), at,
	)
	if err != nil {
		return fmt.Errorf("complete order: %w", err)
	}
	return nil
}

// List lista órdenes con sus líneas, más recientes primero.
func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx,
		"SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		items, err := r.itemsOf(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return list, nil
}

func (r *OrderRepo) itemsOf(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, order_id, product_id, quantity FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var createdBy, completedBy *string
	err := row.Scan(&o.ID, &o.Code, &o.Type, &o.Status, &o.EvidencePhotoURL,
		&o.CreatedAt, &o.UpdatedAt, &createdBy, &completedBy)
	if err != nil {
		return nil, err
	}
	o.CreatedBy, o.CompletedBy = strVal(createdBy), strVal(completedBy)
	return &o, nil
}
