package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidMovementKind = errors.New("tipo de movimiento inválido")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrNeedsApproval       = errors.New("movimiento requiere aprobación de administrador")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrAlreadyCompleted    = errors.New("la orden ya fue completada")
	ErrInsufficientStock   = errors.New("stock insuficiente")
)
