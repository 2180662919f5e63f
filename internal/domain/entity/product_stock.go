package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStock es el saldo actual de un producto en una ubicación.
// (product, location) es único; la cantidad nunca es negativa.
// Es la única entidad mutable de "estado actual": se crea perezosamente en 0
// con la primera mutación y se actualiza en sitio bajo bloqueo de fila.
type ProductStock struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
