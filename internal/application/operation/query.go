package operation

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre documentos (fuera de transacción).
type QueryUseCase struct {
	opRepo   repository.OperationRepository
	lineRepo repository.OperationLineRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(opRepo repository.OperationRepository, lineRepo repository.OperationLineRepository) *QueryUseCase {
	return &QueryUseCase{opRepo: opRepo, lineRepo: lineRepo}
}

// GetByID devuelve un documento con sus líneas, o (nil, nil, nil) si no existe.
func (uc *QueryUseCase) GetByID(_ context.Context, id int64) (*entity.Operation, []*entity.OperationLine, error) {
	op, err := uc.opRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if op == nil {
		return nil, nil, nil
	}
	lines, err := uc.lineRepo.ListByOperation(id)
	if err != nil {
		return nil, nil, err
	}
	return op, lines, nil
}

// List lista documentos con filtros opcionales por tipo y estado.
func (uc *QueryUseCase) List(_ context.Context, operationType, status string, limit, offset int) ([]*entity.Operation, error) {
	return uc.opRepo.List(operationType, status, limit, offset)
}
