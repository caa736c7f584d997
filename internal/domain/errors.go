package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrModuleNotExists cubre dos casos que para el comprador son el mismo:
	// ninguno de los módulos pedidos existe en el catálogo, o el catálogo no
	// tiene módulo básico con el cual completar la orden.
	ErrModuleNotExists = errors.New("módulo no existe en el catálogo")
)
