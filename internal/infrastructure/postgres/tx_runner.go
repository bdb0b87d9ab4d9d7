package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/orders"
	"github.com/jhoicas/almacen-api/internal/application/sales"
	"github.com/jhoicas/almacen-api/internal/application/transfers"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos transaccionales de cada composer.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)
var _ transfers.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con repos
// atados a esa tx. Commit si fn devuelve nil, Rollback si no: ninguna
// operación compuesta deja efectos parciales.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run transacción mínima del libro: movimientos + productos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewMovementRepository(q), NewProductRepository(q))
	})
}

// RunSale transacción de venta: venta + línea + movimiento OUT.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewMovementRepository(q), NewProductRepository(q), NewSaleRepository(q))
	})
}

// RunOrder transacción de completar orden: movimientos por línea + transición.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewMovementRepository(q), NewProductRepository(q), NewOrderRepository(q))
	})
}

// RunTransfer transacción de traslado: verificación de stock + par de
// movimientos + registro de auditoría.
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	transferRepo repository.TransferRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewMovementRepository(q), NewProductRepository(q), NewTransferRepository(q))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
