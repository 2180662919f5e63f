package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo. SKU es único.
// MinStockLevel es el umbral global de alerta por producto: se compara contra el
// saldo de cada (producto, ubicación), no contra el total agregado entre ubicaciones.
type Product struct {
	ID            string
	Name          string
	SKU           string
	Category      string
	UOM           string          // unidad de medida (kg, pcs, ...)
	MinStockLevel decimal.Decimal // umbral de stock mínimo para alertas
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
