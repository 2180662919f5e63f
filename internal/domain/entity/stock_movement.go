package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement es una entrada inmutable del libro de movimientos: nunca se
// modifica después de creada. La cantidad siempre es positiva; la dirección la
// da qué campo de ubicación está poblado (ToLocationID = entrada,
// FromLocationID = salida). BalanceAfter es la foto del saldo tras la mutación:
// la suma de entradas menos salidas de un (producto, ubicación) debe cuadrar
// siempre con su ProductStock actual.
type StockMovement struct {
	ID              string
	ProductID       string
	FromLocationID  *string
	ToLocationID    *string
	Quantity        decimal.Decimal
	TransactionType string // tipo de la operación origen (RECEIPT, DELIVERY, ...)
	OperationID     *int64
	Actor           string
	BalanceAfter    decimal.Decimal
	Notes           string
	Timestamp       time.Time
}
