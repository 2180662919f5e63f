package repository

import "github.com/jhoicas/stockmaster-api/internal/domain/entity"

// ProductStockRepository define el puerto para los saldos por (producto, ubicación).
// Usado dentro de transacciones para garantizar consistencia.
type ProductStockRepository interface {
	Get(productID, locationID string) (*entity.ProductStock, error)
	// GetOrCreateForUpdate bloquea la fila del saldo (SELECT FOR UPDATE) y la
	// crea en 0 si no existe, manteniendo el bloqueo. Toda mutación de saldo
	// pasa por aquí antes de leer la cantidad actual.
	GetOrCreateForUpdate(productID, locationID string) (*entity.ProductStock, error)
	Save(stock *entity.ProductStock) error
	ListByLocation(locationID string, limit, offset int) ([]*entity.ProductStock, error)
	ListByProduct(productID string) ([]*entity.ProductStock, error)
}
