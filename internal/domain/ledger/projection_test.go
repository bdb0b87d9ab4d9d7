package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/ledger"
)

func mov(kind string, qty int64) *entity.Movement {
	return &entity.Movement{Kind: kind, Quantity: qty}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Sign
// ──────────────────────────────────────────────────────────────────────────────

func TestSign_PorTipo(t *testing.T) {
	assert.Equal(t, int64(1), ledger.Sign(entity.MovementKindIN))
	assert.Equal(t, int64(-1), ledger.Sign(entity.MovementKindOUT))
	assert.Equal(t, int64(1), ledger.Sign(entity.MovementKindADJ),
		"ADJ suma tal cual: el signo viaja en la cantidad")
}

// ──────────────────────────────────────────────────────────────────────────────
// Project — plegado del historial
// ──────────────────────────────────────────────────────────────────────────────

func TestProject_HistorialVacio(t *testing.T) {
	p := ledger.Project(nil, dec("10"))
	assert.Equal(t, int64(0), p.Stock)
	assert.True(t, p.Valuation.IsZero())
}

func TestProject_PliegaConSigno(t *testing.T) {
	history := []*entity.Movement{
		mov(entity.MovementKindIN, 100),
		mov(entity.MovementKindOUT, 30),
		mov(entity.MovementKindADJ, -5),
		mov(entity.MovementKindADJ, 2),
	}
	p := ledger.Project(history, dec("2.50"))
	assert.Equal(t, int64(67), p.Stock, "100 - 30 - 5 + 2")
	assert.True(t, p.Valuation.Equal(decimal.RequireFromString("167.5")),
		"valuación = stock × costo unitario")
}

func TestProject_StockPuedeSerNegativo(t *testing.T) {
	// Las ventas no verifican stock: el libro registra el hecho y la
	// proyección lo refleja como discrepancia, no lo impide.
	history := []*entity.Movement{
		mov(entity.MovementKindIN, 5),
		mov(entity.MovementKindOUT, 8),
	}
	p := ledger.Project(history, dec("3"))
	assert.Equal(t, int64(-3), p.Stock)
	assert.True(t, p.Valuation.Equal(decimal.RequireFromString("-9")))
}

func TestProject_OrdenDelHistorialNoImporta(t *testing.T) {
	a := []*entity.Movement{
		mov(entity.MovementKindIN, 10),
		mov(entity.MovementKindOUT, 4),
		mov(entity.MovementKindADJ, -1),
	}
	b := []*entity.Movement{a[2], a[0], a[1]}

	pa := ledger.Project(a, dec("7"))
	pb := ledger.Project(b, dec("7"))
	assert.Equal(t, pa.Stock, pb.Stock, "el plegado es conmutativo")
	assert.True(t, pa.Valuation.Equal(pb.Valuation))
}

func TestValuation_CostoNuloValeCero(t *testing.T) {
	assert.True(t, ledger.Valuation(42, nil).IsZero())
}
