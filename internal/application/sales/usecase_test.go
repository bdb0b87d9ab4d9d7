package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/apptest"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/sales"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

const actorID = "00000000-0000-0000-0000-00000000000a"

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func setup(t *testing.T) (*sales.UseCase, *apptest.Store) {
	t.Helper()
	store := apptest.NewStore()
	uc := sales.NewUseCase(apptest.NewTxRunner(store), apptest.NewSaleRepo(store))
	return uc, store
}

func seedProduct(store *apptest.Store, id, idCode string, unitCost *decimal.Decimal, stock int64) {
	store.AddProduct(&entity.Product{ID: id, IDCode: idCode, Description: "producto " + idCode, UnitCost: unitCost})
	if stock != 0 {
		store.AppendMovement(&entity.Movement{ProductID: id, Kind: entity.MovementKindIN, Quantity: stock})
	}
}

func TestRecordSale_EmiteMovimientoOUT(t *testing.T) {
	uc, store := setup(t)
	seedProduct(store, "p1", "ABC-1", dec("4"), 10)

	resp, err := uc.RecordSale(context.Background(), actorID, dto.RecordSaleRequest{
		ProductID: "p1",
		Quantity:  3,
		Customer:  "cliente",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), store.StockOf("p1"), "10 - 3")
	require.Len(t, store.Movements, 2, "la entrada inicial más el OUT de la venta")

	mov := store.Movements[1]
	assert.Equal(t, entity.MovementKindOUT, mov.Kind)
	assert.Equal(t, entity.ReasonSale, mov.Reason)
	assert.Equal(t, int64(3), mov.Quantity)
	assert.Equal(t, "Venta "+resp.ID, mov.Note, "la nota referencia el id de la venta")
	assert.Equal(t, actorID, mov.CreatedBy)

	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.RequireFromString("4")),
		"sin unit_price explícito usa el costo del producto")
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("12")))
}

func TestRecordSale_PorIDCode(t *testing.T) {
	uc, store := setup(t)
	seedProduct(store, "p1", "ABC-1", dec("4"), 10)

	_, err := uc.RecordSale(context.Background(), actorID, dto.RecordSaleRequest{
		IDCode:   "ABC-1",
		Quantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), store.StockOf("p1"))
}

func TestRecordSale_PrecioExplicitoGanaSobreCosto(t *testing.T) {
	uc, store := setup(t)
	seedProduct(store, "p1", "ABC-1", dec("4"), 10)

	resp, err := uc.RecordSale(context.Background(), actorID, dto.RecordSaleRequest{
		ProductID: "p1",
		Quantity:  2,
		UnitPrice: dec("9.50"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("19")))
}

func TestRecordSale_SinPrecioNiCostoUsaCero(t *testing.T) {
	uc, store := setup(t)
	seedProduct(store, "p1", "ABC-1", nil, 10)

	resp, err := uc.RecordSale(context.Background(), actorID, dto.RecordSaleRequest{
		ProductID: "p1",
		Quantity:  2,
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.IsZero())
}

// La venta no verifica stock: vender más de lo que hay se registra y el stock
// proyectado queda negativo. El faltante aflora como discrepancia, no aquí.
func TestRecordSale_SinVerificacionDeStock(t *testing.T) {
	uc, store := setup(t)
	seedProduct(store, "p1", "ABC-1", dec("4"), 5)

	_, err := uc.RecordSale(context.Background(), actorID, dto.RecordSaleRequest{
		ProductID: "p1",
		Quantity:  8,
	})
	require.NoError(t, err, "la sobreventa se acepta")
	assert.Equal(t, int64(-3), store.StockOf("p1"))
}

func TestRecordSale_CantidadInvalida(t *testing.T) {
	uc, store := setup(t)
	seedProduct(store, "p1", "ABC-1", dec("4"), 5)

	for _, qty := range []int64{0, -1} {
		_, err := uc.RecordSale(context.Background(), actorID, dto.RecordSaleRequest{
			ProductID: "p1",
			Quantity:  qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Len(t, store.Movements, 1, "nada se escribió")
	assert.Empty(t, store.Sales)
}

func TestRecordSale_ProductoInexistente(t *testing.T) {
	uc, store := setup(t)

	_, err := uc.RecordSale(context.Background(), actorID, dto.RecordSaleRequest{
		ProductID: "no-existe",
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.Sales, "la transacción revierte completa")
	assert.Empty(t, store.Movements)
}

func TestRecordSale_SinReferenciaDeProducto(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.RecordSale(context.Background(), actorID, dto.RecordSaleRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListSales(t *testing.T) {
	uc, store := setup(t)
	seedProduct(store, "p1", "ABC-1", dec("4"), 10)

	for i := 0; i < 3; i++ {
		_, err := uc.RecordSale(context.Background(), actorID, dto.RecordSaleRequest{
			ProductID: "p1",
			Quantity:  1,
		})
		require.NoError(t, err)
	}
	list, err := uc.ListSales(dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 3)
	for _, s := range list {
		require.Len(t, s.Items, 1)
		assert.Equal(t, "p1", s.Items[0].ProductID)
	}
}
