package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
// Todos abortan la transacción envolvente y se propagan sin recuperación
// silenciosa; solo los fallos de notificación se tragan y loguean.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrMissingLocation    = errors.New("el tipo de documento requiere una ubicación no asignada")
	ErrEmptyDocument      = errors.New("el documento no tiene líneas")
	ErrAlreadyTerminal    = errors.New("el documento ya está en un estado terminal")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrOperationNotDone   = errors.New("la operación no está validada (DONE)")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUsernameTaken      = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)

// InsufficientStockError detalla un faltante de stock en modo estricto:
// transporta disponible y solicitado para que el caller pueda mostrarlos.
// errors.Is(err, ErrInsufficientStock) lo reconoce.
type InsufficientStockError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %s, solicitado %s", e.Available, e.Requested)
}

// Is permite detectar el error con el centinela ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
