package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/policy"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UseCase registra movimientos en el libro y sirve el historial paginado.
// El registro pasa por la política de autorización, verifica existencia del
// producto y hace el append dentro de una transacción con la fila del
// producto bloqueada (Commit/Rollback vía TxRunner).
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
	policy      policy.Policy
}

// NewUseCase construye el caso de uso del libro.
func NewUseCase(txRunner TxRunner, productRepo repository.ProductRepository, movRepo repository.MovementRepository, pol policy.Policy) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, movRepo: movRepo, policy: pol}
}

// RegisterMovement valida tipo y política, verifica el producto y persiste un
// hecho inmutable. El único estado que toca es el propio registro: nada se
// preagrega, el stock siempre se deriva al leer.
func (uc *UseCase) RegisterMovement(ctx context.Context, actorID, role string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	// El tipo se valida antes de mirar el rol (ErrInvalidMovementKind).
	if err := uc.policy.Authorize(role, in.Kind, in.Quantity); err != nil {
		return nil, err
	}
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	movedAt := now
	if in.MovedAt != nil {
		movedAt = *in.MovedAt
	}
	mov := &entity.Movement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Kind:      in.Kind,
		Reason:    in.Reason,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Note:      in.Note,
		MovedAt:   movedAt,
		CreatedAt: now,
		CreatedBy: actorID,
	}

	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// History devuelve el historial de un producto ordenado por fecha efectiva
// (desempate por orden de inserción), paginado y reiniciable por llamada.
func (uc *UseCase) History(productID string, in dto.HistoryRequest) ([]dto.MovementResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	order := in.Order
	if order != repository.OrderAsc {
		order = repository.OrderDesc
	}
	in.DefaultPage()
	movements, err := uc.movRepo.ListByProduct(productID, order, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Kind:      m.Kind,
		Reason:    m.Reason,
		Quantity:  m.Quantity,
		UnitCost:  m.UnitCost,
		Note:      m.Note,
		MovedAt:   m.MovedAt,
	}
}
