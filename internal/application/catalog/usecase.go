package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TTL corto: el caché solo amortigua listados del catálogo, nunca estado
// derivado del libro.
const cacheTTL = 30 * time.Second

// UseCase CRUD de catálogo: tipos y productos. El motor del libro solo lee
// de aquí las cotas de política y el costo unitario.
type UseCase struct {
	productRepo repository.ProductRepository
	typeRepo    repository.ProductTypeRepository
	cache       ProductCache
}

// NewUseCase construye el caso de uso de catálogo.
func NewUseCase(productRepo repository.ProductRepository, typeRepo repository.ProductTypeRepository, cache ProductCache) *UseCase {
	if cache == nil {
		cache = NoopProductCache{}
	}
	return &UseCase{productRepo: productRepo, typeRepo: typeRepo, cache: cache}
}

// CreateType crea un tipo de producto. Nombre duplicado → ErrDuplicate.
func (uc *UseCase) CreateType(in dto.ProductTypeRequest) (*dto.ProductTypeResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.typeRepo.GetByName(in.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	pt := &entity.ProductType{ID: uuid.New().String(), Name: in.Name}
	if err := uc.typeRepo.Create(pt); err != nil {
		return nil, err
	}
	return &dto.ProductTypeResponse{ID: pt.ID, Name: pt.Name}, nil
}

// ListTypes lista los tipos ordenados por nombre.
func (uc *UseCase) ListTypes() ([]dto.ProductTypeResponse, error) {
	types, err := uc.typeRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, dto.ProductTypeResponse{ID: t.ID, Name: t.Name})
	}
	return out, nil
}

// CreateProduct crea un producto. IDCode duplicado → ErrDuplicate.
func (uc *UseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.IDCode == "" || in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		IDCode:        in.IDCode,
		Description:   in.Description,
		UnitCost:      in.UnitCost,
		ProductTypeID: in.ProductTypeID,
		MinStock:      in.MinStock,
		MaxStock:      in.MaxStock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	_ = uc.cache.Del(ctx, productKey(p.ID))
	return toProductResponse(p), nil
}

// GetProduct lectura por id, read-through sobre el caché.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if raw, ok, _ := uc.cache.Get(ctx, productKey(id)); ok {
		var cached dto.ProductResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := toProductResponse(p)
	if payload, err := json.Marshal(resp); err == nil {
		_ = uc.cache.Set(ctx, productKey(id), payload, cacheTTL)
	}
	return resp, nil
}

// ListProducts lista productos con filtro q (código o descripción) y tipo.
func (uc *UseCase) ListProducts(q, typeID string, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(q, typeID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// UpdateProduct PATCH parcial: campos nil no se modifican. Invalida el caché
// del producto: el detector debe ver el costo nuevo en la siguiente pasada.
func (uc *UseCase) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.UnitCost != nil {
		p.UnitCost = in.UnitCost
	}
	if in.ProductTypeID != nil {
		p.ProductTypeID = in.ProductTypeID
	}
	if in.MinStock != nil {
		p.MinStock = in.MinStock
	}
	if in.MaxStock != nil {
		p.MaxStock = in.MaxStock
	}
	p.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	_ = uc.cache.Del(ctx, productKey(id))
	return toProductResponse(p), nil
}

func productKey(id string) string { return "catalog:product:" + id }

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		IDCode:        p.IDCode,
		Description:   p.Description,
		UnitCost:      p.UnitCost,
		ProductTypeID: p.ProductTypeID,
		MinStock:      p.MinStock,
		MaxStock:      p.MaxStock,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
