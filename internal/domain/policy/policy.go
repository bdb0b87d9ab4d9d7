// Package policy implementa la autorización de movimientos: función pura de
// (rol, tipo, cantidad) a permitir/denegar. La tabla rol→tipos es
// configuración construida al arranque; el umbral de aprobación y la
// validación del tipo son invariantes.
package policy

import (
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Policy decide qué movimientos puede registrar cada rol. Valor inmutable,
// se construye una vez en el arranque y se inyecta; nunca estado global.
type Policy struct {
	// Table rol → tipos permitidos. Roles fuera de la tabla se niegan.
	Table map[string][]string
	// ApprovalThreshold |cantidad| a partir de la cual OUT y ADJ quedan
	// reservados al rol admin, sin importar la entrada de la tabla.
	ApprovalThreshold int64
}

// DefaultTable refleja el comportamiento observado: los cuatro roles
// conocidos pueden registrar cualquier tipo válido y solo el umbral
// restringe. Los despliegues la endurecen por configuración.
func DefaultTable() map[string][]string {
	all := []string{entity.MovementKindIN, entity.MovementKindOUT, entity.MovementKindADJ}
	return map[string][]string{
		entity.RoleAdmin:      all,
		entity.RoleSales:      all,
		entity.RolePurchasing: all,
		entity.RoleUser:       all,
	}
}

// New construye la política con la tabla por defecto.
func New(approvalThreshold int64) Policy {
	return Policy{Table: DefaultTable(), ApprovalThreshold: approvalThreshold}
}

// Authorize decide si el rol puede registrar un movimiento del tipo y
// cantidad dados. Devuelve nil o un error que distingue la causa:
//
//	ErrInvalidMovementKind  tipo fuera de {IN,OUT,ADJ} (se valida antes del rol)
//	ErrForbidden            rol desconocido o sin el tipo en la tabla
//	ErrNeedsApproval        |qty| >= umbral en OUT/ADJ y rol distinto de admin
func (p Policy) Authorize(role, kind string, quantity int64) error {
	if !entity.ValidMovementKind(kind) {
		return domain.ErrInvalidMovementKind
	}
	kinds, ok := p.Table[role]
	if !ok {
		return domain.ErrForbidden // default-deny para roles fuera del conjunto
	}
	allowed := false
	for _, k := range kinds {
		if k == kind {
			allowed = true
			break
		}
	}
	if !allowed {
		return domain.ErrForbidden
	}
	if (kind == entity.MovementKindOUT || kind == entity.MovementKindADJ) &&
		abs(quantity) >= p.ApprovalThreshold && role != entity.RoleAdmin {
		return domain.ErrNeedsApproval
	}
	return nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
