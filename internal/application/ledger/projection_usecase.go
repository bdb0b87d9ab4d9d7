package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domledger "github.com/jhoicas/almacen-api/internal/domain/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ProjectionUseCase lecturas derivadas del libro: stock/valuación proyectados,
// discrepancias y el diario de resoluciones. Todo se calcula al leer;
// nada se preagrega ni se persiste.
type ProjectionUseCase struct {
	productRepo    repository.ProductRepository
	typeRepo       repository.ProductTypeRepository
	movRepo        repository.MovementRepository
	resolutionRepo repository.ResolutionRepository
}

// NewProjectionUseCase construye el caso de uso de proyección.
func NewProjectionUseCase(
	productRepo repository.ProductRepository,
	typeRepo repository.ProductTypeRepository,
	movRepo repository.MovementRepository,
	resolutionRepo repository.ResolutionRepository,
) *ProjectionUseCase {
	return &ProjectionUseCase{
		productRepo:    productRepo,
		typeRepo:       typeRepo,
		movRepo:        movRepo,
		resolutionRepo: resolutionRepo,
	}
}

// Project proyecta el estado de un producto.
func (uc *ProjectionUseCase) Project(productID string) (*dto.ProductFullResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.movRepo.StockOf(productID)
	if err != nil {
		return nil, err
	}
	full := toFull(product, stock, "")
	return &full, nil
}

// ProductsFull lista productos con stock y valuación proyectados, filtrado
// por q/tipo, ordenable por cualquier columna derivada. El orden se aplica
// sobre el conjunto completo antes de paginar, igual que el listado original.
func (uc *ProjectionUseCase) ProductsFull(q, typeID, sortKey, order string, page dto.PageRequest) ([]dto.ProductFullResponse, error) {
	products, err := uc.productRepo.List(q, typeID, 0, 0) // sin límite: el orden es global
	if err != nil {
		return nil, err
	}
	stocks, err := uc.stocksFor(products)
	if err != nil {
		return nil, err
	}
	typeNames, err := uc.typeNames()
	if err != nil {
		return nil, err
	}

	full := make([]dto.ProductFullResponse, 0, len(products))
	for _, p := range products {
		name := ""
		if p.ProductTypeID != nil {
			name = typeNames[*p.ProductTypeID]
		}
		full = append(full, toFull(p, stocks[p.ID], name))
	}

	sortFull(full, sortKey, order)

	if page.Limit < 0 { // sin paginación (exportaciones)
		return full, nil
	}
	page.DefaultPage()
	if page.Offset >= len(full) {
		return []dto.ProductFullResponse{}, nil
	}
	end := page.Offset + page.Limit
	if end > len(full) {
		end = len(full)
	}
	return full[page.Offset:end], nil
}

// Discrepancies evalúa todos los productos contra sus cotas y suprime los
// snapshots ya reconocidos. Determinista y sin efectos.
func (uc *ProjectionUseCase) Discrepancies() ([]dto.DiscrepancyResponse, error) {
	products, err := uc.productRepo.List("", "", 0, 0)
	if err != nil {
		return nil, err
	}
	stocks, err := uc.stocksFor(products)
	if err != nil {
		return nil, err
	}
	resolutions, err := uc.resolutionRepo.ListAll()
	if err != nil {
		return nil, err
	}

	snapshots := make([]domledger.Snapshot, 0, len(products))
	for _, p := range products {
		snapshots = append(snapshots, domledger.Snapshot{Product: p, Stock: stocks[p.ID]})
	}
	found := domledger.Detect(snapshots, resolutions)

	out := make([]dto.DiscrepancyResponse, 0, len(found))
	for _, d := range found {
		out = append(out, dto.DiscrepancyResponse{
			ProductID:   d.ProductID,
			IDCode:      d.IDCode,
			Description: d.Description,
			Type:        d.Type,
			Detail:      d.Detail,
			Stock:       d.Stock,
			UnitCost:    d.UnitCost,
		})
	}
	return out, nil
}

// Resolve toma el snapshot actual (stock proyectado + costo del producto) y
// registra el reconocimiento. Llamarlo dos veces con el mismo estado crea dos
// registros; ambos suprimen el mismo snapshot, duplicación inofensiva.
func (uc *ProjectionUseCase) Resolve(resolverID string, in dto.ResolveRequest) (*dto.ResolutionResponse, error) {
	switch in.DiscrepancyType {
	case entity.DiscrepancyUnitCostMissing, entity.DiscrepancyBelowMinStock, entity.DiscrepancyAboveMaxStock:
	default:
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.movRepo.StockOf(in.ProductID)
	if err != nil {
		return nil, err
	}
	res := &entity.Resolution{
		ID:              uuid.New().String(),
		ProductID:       in.ProductID,
		DiscrepancyType: in.DiscrepancyType,
		Note:            in.Note,
		StockAt:         stock,
		UnitCostAt:      product.UnitCost,
		ResolvedBy:      resolverID,
		ResolvedAt:      time.Now(),
	}
	if err := uc.resolutionRepo.Create(res); err != nil {
		return nil, err
	}
	return &dto.ResolutionResponse{
		ID:              res.ID,
		ProductID:       res.ProductID,
		DiscrepancyType: res.DiscrepancyType,
		Note:            res.Note,
		StockAt:         res.StockAt,
		UnitCostAt:      res.UnitCostAt,
		ResolvedBy:      res.ResolvedBy,
		ResolvedAt:      res.ResolvedAt,
	}, nil
}

// stocksFor proyección por lote, equivalente a proyectar producto por
// producto: el repositorio agrupa por product_id sin mezclar historiales.
func (uc *ProjectionUseCase) stocksFor(products []*entity.Product) (map[string]int64, error) {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return uc.movRepo.StockByProducts(ids)
}

func (uc *ProjectionUseCase) typeNames() (map[string]string, error) {
	types, err := uc.typeRepo.List()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(types))
	for _, t := range types {
		names[t.ID] = t.Name
	}
	return names, nil
}

func toFull(p *entity.Product, stock int64, typeName string) dto.ProductFullResponse {
	return dto.ProductFullResponse{
		ID:          p.ID,
		IDCode:      p.IDCode,
		Description: p.Description,
		UnitCost:    p.UnitCost,
		Stock:       stock,
		Valuation:   domledger.Valuation(stock, p.UnitCost),
		ProductType: typeName,
		MinStock:    p.MinStock,
		MaxStock:    p.MaxStock,
	}
}

func sortFull(full []dto.ProductFullResponse, sortKey, order string) {
	desc := strings.EqualFold(order, "desc")
	less := func(a, b dto.ProductFullResponse) bool { return a.IDCode < b.IDCode }
	switch sortKey {
	case "description":
		less = func(a, b dto.ProductFullResponse) bool { return a.Description < b.Description }
	case "unit_cost":
		less = func(a, b dto.ProductFullResponse) bool { return costOrZero(a.UnitCost).LessThan(costOrZero(b.UnitCost)) }
	case "stock":
		less = func(a, b dto.ProductFullResponse) bool { return a.Stock < b.Stock }
	case "valuation":
		less = func(a, b dto.ProductFullResponse) bool { return a.Valuation.LessThan(b.Valuation) }
	case "product_type":
		less = func(a, b dto.ProductFullResponse) bool { return a.ProductType < b.ProductType }
	}
	sort.SliceStable(full, func(i, j int) bool {
		if desc {
			return less(full[j], full[i])
		}
		return less(full[i], full[j])
	})
}

func costOrZero(c *decimal.Decimal) decimal.Decimal {
	if c == nil {
		return decimal.Zero
	}
	return *c
}
