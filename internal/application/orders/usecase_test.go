package orders_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/apptest"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/orders"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

const actorID = "00000000-0000-0000-0000-00000000000a"

func setup(t *testing.T) (*orders.UseCase, *apptest.Store) {
	t.Helper()
	store := apptest.NewStore()
	cost := decimal.RequireFromString("2")
	store.AddProduct(&entity.Product{ID: "p1", IDCode: "ABC-1", Description: "uno", UnitCost: &cost})
	store.AddProduct(&entity.Product{ID: "p2", IDCode: "ABC-2", Description: "dos", UnitCost: &cost})
	store.AppendMovement(&entity.Movement{ProductID: "p1", Kind: entity.MovementKindIN, Quantity: 20})
	store.AppendMovement(&entity.Movement{ProductID: "p2", Kind: entity.MovementKindIN, Quantity: 20})
	uc := orders.NewUseCase(apptest.NewTxRunner(store), apptest.NewOrderRepo(store), apptest.NewProductRepo(store))
	return uc, store
}

func createOrder(t *testing.T, uc *orders.UseCase, code, otype string, items ...dto.OrderItemRequest) *dto.OrderResponse {
	t.Helper()
	resp, err := uc.CreateOrder(actorID, dto.CreateOrderRequest{Code: code, Type: otype, Items: items})
	require.NoError(t, err)
	return resp
}

func TestCreateOrder_QuedaPendiente(t *testing.T) {
	uc, store := setup(t)
	resp := createOrder(t, uc, "ORD-1", entity.OrderTypeSale,
		dto.OrderItemRequest{ProductID: "p1", Quantity: 3},
		dto.OrderItemRequest{ProductID: "p2", Quantity: 5},
	)
	assert.Equal(t, entity.OrderStatusPending, resp.Status)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, int64(20), store.StockOf("p1"), "crear la orden no mueve stock")
}

func TestCreateOrder_Validaciones(t *testing.T) {
	uc, _ := setup(t)

	_, err := uc.CreateOrder(actorID, dto.CreateOrderRequest{Code: "", Type: entity.OrderTypeSale,
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateOrder(actorID, dto.CreateOrderRequest{Code: "ORD-X", Type: "RETURN",
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo fuera de SALE|PURCHASE")

	_, err = uc.CreateOrder(actorID, dto.CreateOrderRequest{Code: "ORD-X", Type: entity.OrderTypeSale})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.CreateOrder(actorID, dto.CreateOrderRequest{Code: "ORD-X", Type: entity.OrderTypeSale,
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 0}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad no positiva")

	_, err = uc.CreateOrder(actorID, dto.CreateOrderRequest{Code: "ORD-X", Type: entity.OrderTypeSale,
		Items: []dto.OrderItemRequest{{ProductID: "p9", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")
}

func TestCreateOrder_CodigoDuplicado(t *testing.T) {
	uc, _ := setup(t)
	createOrder(t, uc, "ORD-1", entity.OrderTypeSale, dto.OrderItemRequest{ProductID: "p1", Quantity: 1})
	_, err := uc.CreateOrder(actorID, dto.CreateOrderRequest{Code: "ORD-1", Type: entity.OrderTypeSale,
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Completar una orden SALE emite un OUT por línea y adjunta la evidencia.
func TestCompleteOrder_SaleEmiteOUT(t *testing.T) {
	uc, store := setup(t)
	order := createOrder(t, uc, "ORD-1", entity.OrderTypeSale,
		dto.OrderItemRequest{ProductID: "p1", Quantity: 3},
		dto.OrderItemRequest{ProductID: "p2", Quantity: 5},
	)

	resp, err := uc.CompleteOrder(context.Background(), order.ID, "/uploads/foto.jpg", actorID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, resp.Status)
	assert.Equal(t, "/uploads/foto.jpg", resp.EvidencePhotoURL)
	assert.Equal(t, int64(17), store.StockOf("p1"))
	assert.Equal(t, int64(15), store.StockOf("p2"))

	// Dos movimientos nuevos, ambos con razón ORDER y nota con el código.
	require.Len(t, store.Movements, 4)
	for _, m := range store.Movements[2:] {
		assert.Equal(t, entity.MovementKindOUT, m.Kind)
		assert.Equal(t, entity.ReasonOrder, m.Reason)
		assert.Equal(t, "Orden ORD-1", m.Note)
	}
}

// PURCHASE al completar emite IN por línea.
func TestCompleteOrder_PurchaseEmiteIN(t *testing.T) {
	uc, store := setup(t)
	order := createOrder(t, uc, "ORD-2", entity.OrderTypePurchase,
		dto.OrderItemRequest{ProductID: "p1", Quantity: 7})

	_, err := uc.CompleteOrder(context.Background(), order.ID, "", actorID)
	require.NoError(t, err)
	assert.Equal(t, int64(27), store.StockOf("p1"))
	assert.Equal(t, entity.MovementKindIN, store.Movements[2].Kind)
}

// Completar dos veces: la segunda da ErrAlreadyCompleted y no duplica
// movimientos.
func TestCompleteOrder_DobleCompletado(t *testing.T) {
	uc, store := setup(t)
	order := createOrder(t, uc, "ORD-1", entity.OrderTypeSale,
		dto.OrderItemRequest{ProductID: "p1", Quantity: 3})

	_, err := uc.CompleteOrder(context.Background(), order.ID, "", actorID)
	require.NoError(t, err)
	movs := len(store.Movements)

	_, err = uc.CompleteOrder(context.Background(), order.ID, "", actorID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)
	assert.Len(t, store.Movements, movs, "el reintento no emite nada")
	assert.Equal(t, int64(17), store.StockOf("p1"))
}

func TestCompleteOrder_CanceladaEsConflicto(t *testing.T) {
	uc, store := setup(t)
	order := createOrder(t, uc, "ORD-1", entity.OrderTypeSale,
		dto.OrderItemRequest{ProductID: "p1", Quantity: 3})
	store.Orders[order.ID].Status = entity.OrderStatusCancelled

	_, err := uc.CompleteOrder(context.Background(), order.ID, "", actorID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCompleteOrder_Inexistente(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.CompleteOrder(context.Background(), "no-existe", "", actorID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Atomicidad: si una línea falla a mitad del completado, ningún movimiento
// queda y la orden sigue pendiente.
func TestCompleteOrder_FallaDeLineaRevierteTodo(t *testing.T) {
	uc, store := setup(t)
	order := createOrder(t, uc, "ORD-1", entity.OrderTypeSale,
		dto.OrderItemRequest{ProductID: "p1", Quantity: 3},
		dto.OrderItemRequest{ProductID: "p2", Quantity: 5},
	)
	// El segundo producto desaparece antes de completar.
	delete(store.Products, "p2")

	_, err := uc.CompleteOrder(context.Background(), order.ID, "", actorID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Len(t, store.Movements, 2, "ni siquiera el movimiento de la primera línea queda")
	assert.Equal(t, int64(20), store.StockOf("p1"))
	assert.Equal(t, entity.OrderStatusPending, store.Orders[order.ID].Status)
}
