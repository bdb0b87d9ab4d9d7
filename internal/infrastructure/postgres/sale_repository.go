package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y sus líneas. Se invoca dentro de la transacción
// compuesta de venta, junto con el movimiento OUT por línea.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx,
		`INSERT INTO sales (id, customer, note, total, created_at, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		sale.ID, nullStr(sale.Customer), nullStr(sale.Note), sale.Total,
		sale.CreatedAt, nullStr(sale.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	for i := range sale.Items {
		item := &sale.Items[i]
		_, err := r.q.Exec(ctx,
			`INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, subtotal)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, sale.ID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("create sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta con sus líneas. Devuelve nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	ctx := context.Background()
	var s entity.Sale
	var customer, note, createdBy *string
	err := r.q.QueryRow(ctx,
		`SELECT id, customer, note, total, created_at, created_by FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &customer, &note, &s.Total, &s.CreatedAt, &createdBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s.Customer, s.Note, s.CreatedBy = strVal(customer), strVal(note), strVal(createdBy)

	items, err := r.itemsOf(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

// List lista ventas con sus líneas, más recientes primero.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx,
		`SELECT id, customer, note, total, created_at, created_by
		 FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var customer, note, createdBy *string
		if err := rows.Scan(&s.ID, &customer, &note, &s.Total, &s.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.Customer, s.Note, s.CreatedBy = strVal(customer), strVal(note), strVal(createdBy)
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		items, err := r.itemsOf(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	return list, nil
}

func (r *SaleRepo) itemsOf(ctx context.Context, saleID string) ([]entity.SaleItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		 FROM sale_items WHERE sale_id = $1`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
