package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// ErrNotFound cubre también el caso "existe pero pertenece a otro tenant":
// ambos deben ser indistinguibles para el caller.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidStatus      = errors.New("estado destino no soportado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrTenantUnavailable  = errors.New("operador inactivo o cancelado")
	ErrNoServicesSelected = errors.New("ningún servicio seleccionado")
	ErrInsufficientPoints = errors.New("puntos insuficientes para canjear")
)
