package orders

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

// TxRunner transacción para completar una orden: los movimientos de cada
// línea y la transición de estado confirman juntos o no confirma nada.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// UseCase crea y completa órdenes. Completar es una transición única
// PENDING/IN_PROGRESS → COMPLETED que emite un movimiento por línea
// (OUT para SALE, IN para PURCHASE); el stock solo cambia vía el libro.
type UseCase struct {
	txRunner    TxRunner
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso de órdenes.
func NewUseCase(txRunner TxRunner, orderRepo repository.OrderRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{txRunner: txRunner, orderRepo: orderRepo, productRepo: productRepo}
}

// CreateOrder crea una orden PENDING con sus líneas. Código duplicado →
// ErrDuplicate; tipo desconocido o líneas vacías → ErrInvalidInput.
func (uc *UseCase) CreateOrder(actorID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.Code == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.OrderTypeSale && in.Type != entity.OrderTypePurchase {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Type:      in.Type,
		Status:    entity.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: actorID,
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		order.Items = append(order.Items, entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// CompleteOrder transición única: bloquea la orden, rechaza estados
// terminales (ErrAlreadyCompleted para COMPLETED, ErrConflict para
// CANCELLED), emite un movimiento por línea con razón ORDER y nota que
// referencia el código, y marca COMPLETED adjuntando la evidencia.
func (uc *UseCase) CompleteOrder(ctx context.Context, orderID, evidencePhotoURL, actorID string) (*dto.OrderResponse, error) {
	var completed *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusCompleted {
			return domain.ErrAlreadyCompleted
		}
		if entity.TerminalStatus(order.Status) {
			return domain.ErrConflict
		}

		kind := entity.MovementKindOUT
		if order.Type == entity.OrderTypePurchase {
			kind = entity.MovementKindIN
		}
		now := time.Now()
		for _, it := range order.Items {
			product, err := productRepo.GetForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			mov := &entity.Movement{
				ID:        uuid.New().String(),
				ProductID: it.ProductID,
				Kind:      kind,
				Reason:    entity.ReasonOrder,
				Quantity:  it.Quantity,
				UnitCost:  product.UnitCost,
				Note:      fmt.Sprintf("Orden %s", order.Code),
				MovedAt:   now,
				CreatedAt: now,
				CreatedBy: actorID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		if err := orderRepo.Complete(order.ID, evidencePhotoURL, actorID, now); err != nil {
			return err
		}
		order.Status = entity.OrderStatusCompleted
		order.EvidencePhotoURL = evidencePhotoURL
		order.CompletedBy = actorID
		order.UpdatedAt = now
		completed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(completed), nil
}

// GetOrder lectura por id con líneas.
func (uc *UseCase) GetOrder(orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// ListOrders lista órdenes, más reciente primero.
func (uc *UseCase) ListOrders(page dto.PageRequest) ([]dto.OrderResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toOrderResponse(o))
	}
	return out, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return &dto.OrderResponse{
		ID:               o.ID,
		Code:             o.Code,
		Type:             o.Type,
		Status:           o.Status,
		EvidencePhotoURL: o.EvidencePhotoURL,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		Items:            items,
	}
}
