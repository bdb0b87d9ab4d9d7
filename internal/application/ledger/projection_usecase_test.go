package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/apptest"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func setupProjection(t *testing.T) (*ledger.ProjectionUseCase, *apptest.Store) {
	t.Helper()
	store := apptest.NewStore()
	uc := ledger.NewProjectionUseCase(
		apptest.NewProductRepo(store),
		apptest.NewProductTypeRepo(store),
		apptest.NewMovementRepo(store),
		apptest.NewResolutionRepo(store),
	)
	return uc, store
}

func costPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestProject_DerivaDelLibro(t *testing.T) {
	uc, store := setupProjection(t)
	store.AddProduct(&entity.Product{ID: "p1", IDCode: "ABC-1", Description: "uno", UnitCost: costPtr("2.50")})
	store.AppendMovement(&entity.Movement{ProductID: "p1", Kind: entity.MovementKindIN, Quantity: 100})
	store.AppendMovement(&entity.Movement{ProductID: "p1", Kind: entity.MovementKindOUT, Quantity: 30})
	store.AppendMovement(&entity.Movement{ProductID: "p1", Kind: entity.MovementKindADJ, Quantity: -5})

	full, err := uc.Project("p1")
	require.NoError(t, err)
	assert.Equal(t, int64(65), full.Stock)
	assert.True(t, full.Valuation.Equal(decimal.RequireFromString("162.5")))
}

func TestProject_Inexistente(t *testing.T) {
	uc, _ := setupProjection(t)
	_, err := uc.Project("p9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El orden se aplica sobre el conjunto completo y recién después se pagina.
func TestProductsFull_OrdenGlobalAntesDePaginar(t *testing.T) {
	uc, store := setupProjection(t)
	for _, p := range []struct {
		id, code string
		stock    int64
	}{
		{"p1", "C-3", 5},
		{"p2", "A-1", 50},
		{"p3", "B-2", 20},
	} {
		store.AddProduct(&entity.Product{ID: p.id, IDCode: p.code, Description: p.code})
		store.AppendMovement(&entity.Movement{ProductID: p.id, Kind: entity.MovementKindIN, Quantity: p.stock})
	}

	// Ordenado por stock descendente, segunda página de a uno: el del medio.
	page, err := uc.ProductsFull("", "", "stock", "desc", dto.PageRequest{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "B-2", page[0].IDCode)

	// Sin sort explícito: id_code ascendente.
	all, err := uc.ProductsFull("", "", "", "", dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A-1", all[0].IDCode)
	assert.Equal(t, "C-3", all[2].IDCode)
}

func TestProductsFull_LimiteNegativoTraeTodo(t *testing.T) {
	uc, store := setupProjection(t)
	for i := 0; i < 30; i++ {
		id := string(rune('a' + i%26)) + string(rune('0'+i/26))
		store.AddProduct(&entity.Product{ID: id, IDCode: id, Description: id})
	}
	all, err := uc.ProductsFull("", "", "", "", dto.PageRequest{Limit: -1})
	require.NoError(t, err)
	assert.Len(t, all, 30)
}

func TestProductsFull_NombreDeTipo(t *testing.T) {
	uc, store := setupProjection(t)
	store.Types = append(store.Types, &entity.ProductType{ID: "t1", Name: "Tornillería"})
	typeID := "t1"
	store.AddProduct(&entity.Product{ID: "p1", IDCode: "ABC-1", Description: "uno", ProductTypeID: &typeID})

	all, err := uc.ProductsFull("", "", "", "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Tornillería", all[0].ProductType)
}

// Flujo completo: detectar, resolver con snapshot, la discrepancia desaparece
// y reaparece cuando el stock cambia.
func TestDiscrepancies_ResolverSuprimeHastaQueCambia(t *testing.T) {
	uc, store := setupProjection(t)
	min := int64(10)
	store.AddProduct(&entity.Product{ID: "p1", IDCode: "ABC-1", Description: "uno", UnitCost: costPtr("1"), MinStock: &min})
	store.AppendMovement(&entity.Movement{ProductID: "p1", Kind: entity.MovementKindIN, Quantity: 4})

	found, err := uc.Discrepancies()
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, entity.DiscrepancyBelowMinStock, found[0].Type)
	assert.Equal(t, int64(4), found[0].Stock)

	res, err := uc.Resolve("admin-1", dto.ResolveRequest{
		ProductID: "p1", DiscrepancyType: entity.DiscrepancyBelowMinStock, Note: "conteo físico ok",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.StockAt, "el snapshot captura el stock proyectado al resolver")

	found, err = uc.Discrepancies()
	require.NoError(t, err)
	assert.Empty(t, found, "el snapshot reconocido se suprime")

	// El stock cambia: el ancla ya no coincide y la discrepancia reaparece.
	store.AppendMovement(&entity.Movement{ProductID: "p1", Kind: entity.MovementKindOUT, Quantity: 1})
	found, err = uc.Discrepancies()
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(3), found[0].Stock)
}

func TestResolve_Validaciones(t *testing.T) {
	uc, store := setupProjection(t)
	store.AddProduct(&entity.Product{ID: "p1", IDCode: "ABC-1", Description: "uno"})

	_, err := uc.Resolve("admin-1", dto.ResolveRequest{ProductID: "p1", DiscrepancyType: "OVERSTOCKED"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo de discrepancia desconocido")

	_, err = uc.Resolve("admin-1", dto.ResolveRequest{ProductID: "p9", DiscrepancyType: entity.DiscrepancyUnitCostMissing})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
