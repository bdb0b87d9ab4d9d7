package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner transacción para la venta: Sale + SaleItem + movimiento OUT
// confirman juntos o no confirma nada.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// UseCase registra ventas. Cada venta produce exactamente un movimiento OUT
// por línea con razón SALE y nota que referencia el id de la venta.
// Deliberadamente no verifica stock disponible: el faltante aflora como
// discrepancia, igual que en el sistema original.
type UseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(txRunner TxRunner, saleRepo repository.SaleRepository) *UseCase {
	return &UseCase{txRunner: txRunner, saleRepo: saleRepo}
}

// RecordSale resuelve el producto (por id o id_code), calcula
// unitPrice ?? costo ?? 0 y subtotal, y persiste venta, línea y movimiento
// OUT como unidad. Cantidad no positiva → ErrInvalidInput.
func (uc *UseCase) RecordSale(ctx context.Context, actorID string, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductID == "" && in.IDCode == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		Customer:  in.Customer,
		Note:      in.Note,
		CreatedAt: now,
		CreatedBy: actorID,
	}

	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		product, err := resolveProduct(productRepo, in.ProductID, in.IDCode)
		if err != nil {
			return err
		}
		// Bloquea la fila del producto: la venta es la única escritura en
		// vuelo sobre este producto hasta el commit.
		if _, err := productRepo.GetForUpdate(product.ID); err != nil {
			return err
		}

		unitPrice := decimal.Zero
		switch {
		case in.UnitPrice != nil:
			unitPrice = *in.UnitPrice
		case product.UnitCost != nil:
			unitPrice = *product.UnitCost
		}
		subtotal := unitPrice.Mul(decimal.NewFromInt(in.Quantity))

		sale.Total = subtotal
		sale.Items = []entity.SaleItem{{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: product.ID,
			Quantity:  in.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  subtotal,
		}}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		mov := &entity.Movement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Kind:      entity.MovementKindOUT,
			Reason:    entity.ReasonSale,
			Quantity:  in.Quantity,
			UnitCost:  product.UnitCost,
			Note:      fmt.Sprintf("Venta %s", sale.ID),
			MovedAt:   now,
			CreatedAt: now,
			CreatedBy: actorID,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// ListSales lista ventas con sus líneas, más reciente primero.
func (uc *UseCase) ListSales(page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	sales, err := uc.saleRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, *toSaleResponse(s))
	}
	return out, nil
}

func resolveProduct(productRepo repository.ProductRepository, id, idCode string) (*entity.Product, error) {
	var product *entity.Product
	var err error
	if id != "" {
		product, err = productRepo.GetByID(id)
	} else {
		product, err = productRepo.GetByIDCode(idCode)
	}
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return &dto.SaleResponse{
		ID:        s.ID,
		Customer:  s.Customer,
		Note:      s.Note,
		Total:     s.Total,
		CreatedAt: s.CreatedAt,
		Items:     items,
	}
}
