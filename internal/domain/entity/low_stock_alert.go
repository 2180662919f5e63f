package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockAlert registra el cruce del umbral mínimo de un producto en una
// ubicación. Invariante: a lo sumo una alerta activa (no resuelta) por
// (producto, ubicación). CurrentQuantity y Threshold son los valores observados
// al crearla; al resolverla se estampa ResolvedAt y la cantidad de cruce.
type LowStockAlert struct {
	ID              string
	ProductID       string
	LocationID      string
	CurrentQuantity decimal.Decimal
	Threshold       decimal.Decimal
	IsResolved      bool
	IsRead          bool
	CreatedAt       time.Time
	ResolvedAt      *time.Time
}
