package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/policy"
)

const threshold = 1000

// Escenario base: un rol no-admin registra un OUT chico y uno grande.
func TestAuthorize_UmbralDeAprobacion(t *testing.T) {
	pol := policy.New(threshold)

	assert.NoError(t, pol.Authorize(entity.RoleSales, entity.MovementKindOUT, 999),
		"bajo el umbral el OUT pasa")
	assert.ErrorIs(t, pol.Authorize(entity.RoleSales, entity.MovementKindOUT, 1000),
		domain.ErrNeedsApproval, "el umbral es inclusivo: |qty| >= threshold")
	assert.ErrorIs(t, pol.Authorize(entity.RoleSales, entity.MovementKindOUT, 5000),
		domain.ErrNeedsApproval)
}

func TestAuthorize_AdminNoTieneUmbral(t *testing.T) {
	pol := policy.New(threshold)
	assert.NoError(t, pol.Authorize(entity.RoleAdmin, entity.MovementKindOUT, 1000000))
	assert.NoError(t, pol.Authorize(entity.RoleAdmin, entity.MovementKindADJ, -1000000))
}

func TestAuthorize_ADJUsaValorAbsoluto(t *testing.T) {
	pol := policy.New(threshold)
	assert.ErrorIs(t, pol.Authorize(entity.RoleUser, entity.MovementKindADJ, -1000),
		domain.ErrNeedsApproval, "un ajuste de -1000 también requiere aprobación")
	assert.NoError(t, pol.Authorize(entity.RoleUser, entity.MovementKindADJ, -999))
}

func TestAuthorize_INNoRequiereAprobacion(t *testing.T) {
	pol := policy.New(threshold)
	assert.NoError(t, pol.Authorize(entity.RoleUser, entity.MovementKindIN, 1000000),
		"el umbral solo aplica a OUT y ADJ")
}

func TestAuthorize_TipoInvalidoPrecedeAlRol(t *testing.T) {
	pol := policy.New(threshold)
	// Tipo inválido se reporta igual para roles conocidos y desconocidos.
	assert.ErrorIs(t, pol.Authorize(entity.RoleAdmin, "TRANSFER", 1),
		domain.ErrInvalidMovementKind)
	assert.ErrorIs(t, pol.Authorize("rol-inexistente", "TRANSFER", 1),
		domain.ErrInvalidMovementKind)
}

func TestAuthorize_RolDesconocidoDenegadoPorDefecto(t *testing.T) {
	pol := policy.New(threshold)
	assert.ErrorIs(t, pol.Authorize("superuser", entity.MovementKindIN, 1),
		domain.ErrForbidden)
	assert.ErrorIs(t, pol.Authorize("", entity.MovementKindIN, 1),
		domain.ErrForbidden)
}

func TestAuthorize_TablaRestringidaPorConfiguracion(t *testing.T) {
	pol := policy.Policy{
		Table: map[string][]string{
			entity.RoleSales: {entity.MovementKindOUT},
		},
		ApprovalThreshold: threshold,
	}
	assert.NoError(t, pol.Authorize(entity.RoleSales, entity.MovementKindOUT, 1))
	assert.ErrorIs(t, pol.Authorize(entity.RoleSales, entity.MovementKindIN, 1),
		domain.ErrForbidden, "tipo fuera de la entrada del rol")
	assert.ErrorIs(t, pol.Authorize(entity.RoleUser, entity.MovementKindOUT, 1),
		domain.ErrForbidden, "rol fuera de la tabla")
}

// Monotonicidad: si una cantidad se autoriza, toda cantidad menor en valor
// absoluto también, con el mismo rol y tipo.
func TestAuthorize_Monotonicidad(t *testing.T) {
	pol := policy.New(threshold)
	for _, role := range []string{entity.RoleAdmin, entity.RoleSales, entity.RolePurchasing, entity.RoleUser} {
		for _, kind := range []string{entity.MovementKindIN, entity.MovementKindOUT, entity.MovementKindADJ} {
			var prevAllowed *bool
			// Recorrido de mayor a menor |qty|.
			for _, qty := range []int64{5000, 1000, 999, 100, 1} {
				allowed := pol.Authorize(role, kind, qty) == nil
				if prevAllowed != nil && *prevAllowed {
					assert.True(t, allowed,
						"rol %s tipo %s: si una cantidad mayor pasa, la menor también", role, kind)
				}
				prevAllowed = &allowed
			}
		}
	}
}
