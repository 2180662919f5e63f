package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// LowStockAlertRepository define el puerto para alertas de stock bajo.
type LowStockAlertRepository interface {
	Create(alert *entity.LowStockAlert) error
	GetByID(id string) (*entity.LowStockAlert, error)
	// HasActive indica si existe una alerta activa (no resuelta) para el par.
	HasActive(productID, locationID string) (bool, error)
	// ResolveActive resuelve TODAS las alertas activas del par (debería haber a
	// lo sumo una, pero la operación es segura si hay más), estampando
	// resolved_at y la cantidad con la que se cruzó el umbral de vuelta.
	ResolveActive(productID, locationID string, quantity decimal.Decimal, at time.Time) error
	ListActive(limit, offset int) ([]*entity.LowStockAlert, error)
	MarkRead(id string) error
}
