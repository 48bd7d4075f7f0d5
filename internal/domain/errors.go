package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrNegativeResult       = errors.New("el ajuste dejaría la cantidad en negativo")
	ErrSlotOccupied         = errors.New("la posición ya está ocupada")
	ErrTargetOccupied       = errors.New("la posición destino ya está ocupada")
	ErrRackCodeNotParseable = errors.New("código de estantería no parseable")
	ErrStorageFailure       = errors.New("fallo de persistencia")
)
