package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del catálogo de bodegas sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una bodega. Código duplicado → ErrDuplicate.
func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO warehouses (id, code, name, created_at) VALUES ($1, $2, $3, $4)`,
		w.ID, w.Code, w.Name, w.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por id. Devuelve nil si no existe.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(context.Background(),
		`SELECT id, code, name, created_at FROM warehouses WHERE id = $1`, id,
	).Scan(&w.ID, &w.Code, &w.Name, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// List lista las bodegas ordenadas por código.
func (r *WarehouseRepo) List() ([]*entity.Warehouse, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, code, name, created_at FROM warehouses ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Code, &w.Name, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo registro de auditoría de traslados sobre PostgreSQL. Insert-only.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create inserta el registro del traslado, en la misma transacción que su
// par de movimientos.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO transfers (id, product_id, from_warehouse_id, to_warehouse_id, quantity, notes, created_at, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.ProductID, t.FromWarehouseID, t.ToWarehouseID, t.Quantity,
		nullStr(t.Notes), t.CreatedAt, nullStr(t.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

// List lista traslados, más recientes primero.
func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, product_id, from_warehouse_id, to_warehouse_id, quantity, COALESCE(notes, ''), created_at, created_by
		 FROM transfers ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		var createdBy *string
		if err := rows.Scan(&t.ID, &t.ProductID, &t.FromWarehouseID, &t.ToWarehouseID,
			&t.Quantity, &t.Notes, &t.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		t.CreatedBy = strVal(createdBy)
		list = append(list, &t)
	}
	return list, rows.Err()
}
