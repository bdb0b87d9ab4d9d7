package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/apptest"
	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// mapCache caché en memoria que cuenta hits para verificar read-through.
type mapCache struct {
	data map[string][]byte
	hits int
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	raw, ok := c.data[key]
	if ok {
		c.hits++
	}
	return raw, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *mapCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func setup(t *testing.T) (*catalog.UseCase, *apptest.Store, *mapCache) {
	t.Helper()
	store := apptest.NewStore()
	cache := newMapCache()
	uc := catalog.NewUseCase(apptest.NewProductRepo(store), apptest.NewProductTypeRepo(store), cache)
	return uc, store, cache
}

func TestCreateType_Duplicado(t *testing.T) {
	uc, _, _ := setup(t)
	_, err := uc.CreateType(dto.ProductTypeRequest{Name: "Tornillería"})
	require.NoError(t, err)
	_, err = uc.CreateType(dto.ProductTypeRequest{Name: "Tornillería"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.CreateType(dto.ProductTypeRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateProduct_CodigoDuplicado(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()
	_, err := uc.CreateProduct(ctx, dto.CreateProductRequest{IDCode: "ABC-1", Description: "uno"})
	require.NoError(t, err)
	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{IDCode: "ABC-1", Description: "otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{Description: "sin código"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Primera lectura va al repo y siembra el caché; la segunda sale del caché.
func TestGetProduct_ReadThrough(t *testing.T) {
	uc, store, cache := setup(t)
	ctx := context.Background()
	store.AddProduct(&entity.Product{ID: "p1", IDCode: "ABC-1", Description: "uno"})

	first, err := uc.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, cache.hits)

	second, err := uc.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits, "la segunda lectura sale del caché")
	assert.Equal(t, first.IDCode, second.IDCode)
}

func TestGetProduct_Inexistente(t *testing.T) {
	uc, _, _ := setup(t)
	_, err := uc.GetProduct(context.Background(), "p9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Actualizar invalida el caché: la lectura siguiente ve el costo nuevo.
func TestUpdateProduct_InvalidaCache(t *testing.T) {
	uc, store, cache := setup(t)
	ctx := context.Background()
	store.AddProduct(&entity.Product{ID: "p1", IDCode: "ABC-1", Description: "uno"})

	_, err := uc.GetProduct(ctx, "p1")
	require.NoError(t, err)
	require.NotEmpty(t, cache.data, "la primera lectura sembró el caché")

	cost := decimal.RequireFromString("9.99")
	updated, err := uc.UpdateProduct(ctx, "p1", dto.UpdateProductRequest{UnitCost: &cost})
	require.NoError(t, err)
	require.NotNil(t, updated.UnitCost)
	assert.Empty(t, cache.data, "la actualización invalida la entrada")

	fresh, err := uc.GetProduct(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, fresh.UnitCost)
	assert.True(t, fresh.UnitCost.Equal(cost))
}

// PATCH parcial: los campos nil no tocan lo existente.
func TestUpdateProduct_Parcial(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()
	min := int64(5)
	store.AddProduct(&entity.Product{ID: "p1", IDCode: "ABC-1", Description: "uno", MinStock: &min})

	desc := "uno renombrado"
	resp, err := uc.UpdateProduct(ctx, "p1", dto.UpdateProductRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "uno renombrado", resp.Description)
	require.NotNil(t, resp.MinStock)
	assert.Equal(t, int64(5), *resp.MinStock, "el resto queda intacto")
}

func TestListProducts_Filtro(t *testing.T) {
	uc, store, _ := setup(t)
	store.AddProduct(&entity.Product{ID: "p1", IDCode: "TOR-1", Description: "tornillo"})
	store.AddProduct(&entity.Product{ID: "p2", IDCode: "CLA-1", Description: "clavo"})

	list, err := uc.ListProducts("torni", "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "TOR-1", list[0].IDCode)
}
