package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/stock/movements (movimiento directo
// sin documento). Type: INCREASE | DECREASE | TRANSFER | ADJUSTMENT.
// Para TRANSFER, location_id es el origen y to_location_id el destino.
// Para ADJUSTMENT, quantity es la cantidad contada (absoluta).
type RegisterMovementRequest struct {
	Type         string          `json:"type"`
	ProductID    string          `json:"product_id"`
	LocationID   string          `json:"location_id"`
	ToLocationID string          `json:"to_location_id,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Notes        string          `json:"notes,omitempty"`
}

// StockResponse saldo actual de un producto en una ubicación.
type StockResponse struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// MovementResponse entrada del libro de movimientos.
type MovementResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	FromLocationID  *string         `json:"from_location_id,omitempty"`
	ToLocationID    *string         `json:"to_location_id,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	TransactionType string          `json:"transaction_type"`
	OperationID     *int64          `json:"operation_id,omitempty"`
	Actor           string          `json:"actor,omitempty"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	Notes           string          `json:"notes,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
}

// AlertResponse alerta de stock bajo.
type AlertResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	LocationID      string          `json:"location_id"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	Threshold       decimal.Decimal `json:"threshold"`
	IsResolved      bool            `json:"is_resolved"`
	IsRead          bool            `json:"is_read"`
	CreatedAt       time.Time       `json:"created_at"`
	ResolvedAt      *time.Time      `json:"resolved_at,omitempty"`
}
