package repository

import "github.com/jhoicas/stockmaster-api/internal/domain/entity"

// StockMovementRepository define el puerto del libro de movimientos.
// Solo inserta y consulta: los movimientos nunca se modifican ni borran.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByLocation(locationID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByOperation(operationID int64) ([]*entity.StockMovement, error)
}
