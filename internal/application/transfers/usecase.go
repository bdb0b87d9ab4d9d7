package transfers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner transacción para el traslado: la verificación de stock, el par
// TRANSFER_OUT/TRANSFER_IN y el registro de auditoría confirman juntos.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		transferRepo repository.TransferRepository,
	) error) error
}

// UseCase traslados entre bodegas. El par OUT/IN deja el stock global
// derivado exactamente igual: existe para auditoría, no para cambiar el
// total. Única operación que verifica stock disponible.
type UseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
	transferRepo  repository.TransferRepository
}

// NewUseCase construye el caso de uso de traslados.
func NewUseCase(txRunner TxRunner, warehouseRepo repository.WarehouseRepository, transferRepo repository.TransferRepository) *UseCase {
	return &UseCase{txRunner: txRunner, warehouseRepo: warehouseRepo, transferRepo: transferRepo}
}

// CreateTransfer valida bodegas y cantidad, verifica bajo bloqueo que la
// cantidad pedida no exceda el stock proyectado (ErrInsufficientStock) y
// registra el par de movimientos más el traslado. Si algo falla no queda
// ningún efecto parcial.
func (uc *UseCase) CreateTransfer(ctx context.Context, actorID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.ProductID == "" || in.FromWarehouseID == "" || in.ToWarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouseID == in.ToWarehouseID || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	from, err := uc.warehouseRepo.GetByID(in.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	to, err := uc.warehouseRepo.GetByID(in.ToWarehouseID)
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	transfer := &entity.Transfer{
		ID:              uuid.New().String(),
		ProductID:       in.ProductID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
		Notes:           in.Notes,
		CreatedAt:       now,
		CreatedBy:       actorID,
	}

	err = uc.txRunner.RunTransfer(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		transferRepo repository.TransferRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		// Stock proyectado bajo bloqueo: ningún otro escritor de este
		// producto puede colarse entre la verificación y el append.
		stock, err := movRepo.StockOf(in.ProductID)
		if err != nil {
			return err
		}
		if stock < in.Quantity {
			return domain.ErrInsufficientStock
		}

		tag := fmt.Sprintf("Traslado %s -> %s", from.Code, to.Code)
		if in.Notes != "" {
			tag = tag + ": " + in.Notes
		}
		outMov := &entity.Movement{
			ID:        uuid.New().String(),
			ProductID: in.ProductID,
			Kind:      entity.MovementKindOUT,
			Reason:    entity.ReasonTransferOut,
			Quantity:  in.Quantity,
			UnitCost:  product.UnitCost,
			Note:      tag,
			MovedAt:   now,
			CreatedAt: now,
			CreatedBy: actorID,
		}
		if err := movRepo.Create(outMov); err != nil {
			return err
		}
		inMov := &entity.Movement{
			ID:        uuid.New().String(),
			ProductID: in.ProductID,
			Kind:      entity.MovementKindIN,
			Reason:    entity.ReasonTransferIn,
			Quantity:  in.Quantity,
			UnitCost:  product.UnitCost,
			Note:      tag,
			MovedAt:   now,
			CreatedAt: now,
			CreatedBy: actorID,
		}
		if err := movRepo.Create(inMov); err != nil {
			return err
		}
		return transferRepo.Create(transfer)
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(transfer), nil
}

// ListTransfers lista traslados, más reciente primero.
func (uc *UseCase) ListTransfers(page dto.PageRequest) ([]dto.TransferResponse, error) {
	page.DefaultPage()
	transfers, err := uc.transferRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, *toTransferResponse(t))
	}
	return out, nil
}

// CreateWarehouse alta de bodega en el catálogo.
func (uc *UseCase) CreateWarehouse(in dto.WarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		CreatedAt: time.Now(),
	}
	if err := uc.warehouseRepo.Create(w); err != nil {
		return nil, err
	}
	return &dto.WarehouseResponse{ID: w.ID, Code: w.Code, Name: w.Name}, nil
}

// ListWarehouses lista el catálogo de bodegas.
func (uc *UseCase) ListWarehouses() ([]dto.WarehouseResponse, error) {
	warehouses, err := uc.warehouseRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, dto.WarehouseResponse{ID: w.ID, Code: w.Code, Name: w.Name})
	}
	return out, nil
}

func toTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	return &dto.TransferResponse{
		ID:              t.ID,
		ProductID:       t.ProductID,
		FromWarehouseID: t.FromWarehouseID,
		ToWarehouseID:   t.ToWarehouseID,
		Quantity:        t.Quantity,
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt,
	}
}
