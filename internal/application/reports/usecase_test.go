package reports_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/apptest"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// pdfStub registra con cuántos productos se pidió el PDF.
type pdfStub struct {
	got []dto.ProductFullResponse
}

func (s *pdfStub) GenerateValuationPDF(_ context.Context, products []dto.ProductFullResponse) ([]byte, error) {
	s.got = products
	return []byte("%PDF-stub"), nil
}

func setup(t *testing.T) (*reports.UseCase, *apptest.Store, *pdfStub) {
	t.Helper()
	store := apptest.NewStore()
	projection := ledger.NewProjectionUseCase(
		apptest.NewProductRepo(store),
		apptest.NewProductTypeRepo(store),
		apptest.NewMovementRepo(store),
		apptest.NewResolutionRepo(store),
	)
	stub := &pdfStub{}
	return reports.NewUseCase(projection, stub), store, stub
}

func parseCSV(t *testing.T, raw []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestProductsCSV_EncabezadosYProyeccion(t *testing.T) {
	uc, store, _ := setup(t)
	cost := decimal.RequireFromString("2.5")
	min := int64(1)
	store.AddProduct(&entity.Product{ID: "p1", IDCode: "ABC-1", Description: "uno", UnitCost: &cost, MinStock: &min})
	store.AddProduct(&entity.Product{ID: "p2", IDCode: "ABC-2", Description: "dos"})
	store.AppendMovement(&entity.Movement{ProductID: "p1", Kind: entity.MovementKindIN, Quantity: 10})

	raw, err := uc.ProductsCSV("", "")
	require.NoError(t, err)
	rows := parseCSV(t, raw)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"codigo", "descripcion", "costo_unitario", "stock", "valuacion", "tipo", "min_stock", "max_stock"}, rows[0])
	assert.Equal(t, []string{"ABC-1", "uno", "2.5", "10", "25", "", "1", ""}, rows[1])
	assert.Equal(t, "0", rows[2][3], "sin movimientos el stock proyectado es cero")
	assert.Equal(t, "", rows[2][2], "costo nulo exporta vacío")
}

func TestProductsCSV_FiltroQ(t *testing.T) {
	uc, store, _ := setup(t)
	store.AddProduct(&entity.Product{ID: "p1", IDCode: "TOR-1", Description: "tornillo"})
	store.AddProduct(&entity.Product{ID: "p2", IDCode: "CLA-1", Description: "clavo"})

	raw, err := uc.ProductsCSV("clavo", "")
	require.NoError(t, err)
	rows := parseCSV(t, raw)
	require.Len(t, rows, 2)
	assert.Equal(t, "CLA-1", rows[1][0])
}

func TestDiscrepanciesCSV_SoloVigentes(t *testing.T) {
	uc, store, _ := setup(t)
	min := int64(10)
	cost := decimal.RequireFromString("1")
	store.AddProduct(&entity.Product{ID: "p1", IDCode: "ABC-1", Description: "uno", UnitCost: &cost, MinStock: &min})
	store.AppendMovement(&entity.Movement{ProductID: "p1", Kind: entity.MovementKindIN, Quantity: 4})

	raw, err := uc.DiscrepanciesCSV()
	require.NoError(t, err)
	rows := parseCSV(t, raw)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"codigo", "descripcion", "discrepancia", "detalle", "stock", "costo_unitario"}, rows[0])
	assert.Equal(t, entity.DiscrepancyBelowMinStock, rows[1][2])
	assert.Equal(t, "4", rows[1][4])

	// Resolver con el snapshot vigente deja el CSV solo con encabezados.
	store.Resolutions = append(store.Resolutions, &entity.Resolution{
		ID: "r1", ProductID: "p1", DiscrepancyType: entity.DiscrepancyBelowMinStock,
		StockAt: 4, UnitCostAt: &cost,
	})
	raw, err = uc.DiscrepanciesCSV()
	require.NoError(t, err)
	assert.Len(t, parseCSV(t, raw), 1)
}

func TestValuationPDF_ProyectaTodoSinPaginar(t *testing.T) {
	uc, store, stub := setup(t)
	for i := 0; i < 25; i++ {
		id := string(rune('a'+i%26)) + string(rune('0'+i/26))
		store.AddProduct(&entity.Product{ID: id, IDCode: id, Description: id})
	}

	raw, err := uc.ValuationPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), raw)
	assert.Len(t, stub.got, 25, "el PDF recibe el catálogo completo, sin paginar")
}
