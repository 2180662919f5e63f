package usecase

import (
	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// StockQueryUseCase consultas de solo lectura sobre saldos y el libro de
// movimientos. No muta nada: las mutaciones viven en el motor de stock.
type StockQueryUseCase struct {
	stockRepo repository.ProductStockRepository
	movRepo   repository.StockMovementRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(stockRepo repository.ProductStockRepository, movRepo repository.StockMovementRepository) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo, movRepo: movRepo}
}

// GetBalance devuelve el saldo de un producto en una ubicación (0 si nunca hubo movimiento).
func (uc *StockQueryUseCase) GetBalance(productID, locationID string) (*dto.StockResponse, error) {
	s, err := uc.stockRepo.Get(productID, locationID)
	if err != nil {
		return nil, err
	}
	return toStockResponse(s), nil
}

// ListByLocation lista los saldos de una ubicación.
func (uc *StockQueryUseCase) ListByLocation(locationID string, limit, offset int) ([]dto.StockResponse, error) {
	list, err := uc.stockRepo.ListByLocation(locationID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return items, nil
}

// ListByProduct lista los saldos de un producto en todas sus ubicaciones.
func (uc *StockQueryUseCase) ListByProduct(productID string) ([]dto.StockResponse, error) {
	list, err := uc.stockRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return items, nil
}

// MovementsByProduct historial de movimientos de un producto (más reciente primero).
func (uc *StockQueryUseCase) MovementsByProduct(productID string, limit, offset int) ([]dto.MovementResponse, error) {
	list, err := uc.movRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// MovementsByLocation historial de movimientos que tocan una ubicación.
func (uc *StockQueryUseCase) MovementsByLocation(locationID string, limit, offset int) ([]dto.MovementResponse, error) {
	list, err := uc.movRepo.ListByLocation(locationID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// MovementsByOperation movimientos generados por la validación de un documento.
func (uc *StockQueryUseCase) MovementsByOperation(operationID int64) ([]dto.MovementResponse, error) {
	list, err := uc.movRepo.ListByOperation(operationID)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

func toStockResponse(s *entity.ProductStock) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		ProductID:  s.ProductID,
		LocationID: s.LocationID,
		Quantity:   s.Quantity,
		UpdatedAt:  s.UpdatedAt,
	}
}

func toMovementResponses(list []*entity.StockMovement) []dto.MovementResponse {
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:              m.ID,
			ProductID:       m.ProductID,
			FromLocationID:  m.FromLocationID,
			ToLocationID:    m.ToLocationID,
			Quantity:        m.Quantity,
			TransactionType: m.TransactionType,
			OperationID:     m.OperationID,
			Actor:           m.Actor,
			BalanceAfter:    m.BalanceAfter,
			Notes:           m.Notes,
			Timestamp:       m.Timestamp,
		})
	}
	return items
}
