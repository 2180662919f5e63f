package operation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/application/stock"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

// WorkflowUseCase es el motor de flujo de documentos: creación en DRAFT con
// número de referencia, transiciones de estado y validación (el único camino
// que muta stock, vía el Ledger dentro de su misma transacción).
type WorkflowUseCase struct {
	txRunner TxRunner
	notifier stock.Notifier
	log      *logger.Logger
}

// NewWorkflowUseCase construye el motor de documentos.
// notifier puede ser nil (notificación opcional, best-effort).
func NewWorkflowUseCase(txRunner TxRunner, notifier stock.Notifier, log *logger.Logger) *WorkflowUseCase {
	return &WorkflowUseCase{txRunner: txRunner, notifier: notifier, log: log}
}

// CreateLineInput es una línea en la creación de un documento.
type CreateLineInput struct {
	ProductID        string
	QuantityDemanded decimal.Decimal
}

// CreateInput es la entrada para crear un documento en DRAFT.
type CreateInput struct {
	OperationType         string
	SourceLocationID      *string
	DestinationLocationID *string
	PartnerID             *string
	PartnerName           string
	Lines                 []CreateLineInput
	CreatedBy             string
}

// Create persiste un documento en DRAFT con sus líneas y estampa el número de
// referencia en dos fases (insertar, obtener ID, estampar) dentro de la misma
// transacción. La referencia es inmutable a partir de ahí.
func (uc *WorkflowUseCase) Create(ctx context.Context, in CreateInput) (*entity.Operation, error) {
	if !entity.ValidOperationType(in.OperationType) {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		if !line.QuantityDemanded.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidQuantity
		}
	}

	now := time.Now()
	op := &entity.Operation{
		OperationType:         in.OperationType,
		Status:                entity.StatusDraft,
		SourceLocationID:      in.SourceLocationID,
		DestinationLocationID: in.DestinationLocationID,
		PartnerID:             in.PartnerID,
		PartnerName:           in.PartnerName,
		CreatedBy:             in.CreatedBy,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	err := uc.txRunner.RunOperation(ctx, func(
		opRepo repository.OperationRepository,
		lineRepo repository.OperationLineRepository,
		_ repository.ProductStockRepository,
		_ repository.StockMovementRepository,
		_ repository.LowStockAlertRepository,
		productRepo repository.ProductRepository,
	) error {
		id, err := opRepo.Create(op)
		if err != nil {
			return err
		}
		op.ID = id
		op.ReferenceNumber = entity.FormatReference(op.OperationType, id)
		if err := opRepo.StampReference(id, op.ReferenceNumber); err != nil {
			return err
		}
		for _, line := range in.Lines {
			product, err := productRepo.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if err := lineRepo.Create(&entity.OperationLine{
				ID:               uuid.New().String(),
				OperationID:      id,
				ProductID:        line.ProductID,
				QuantityDemanded: line.QuantityDemanded,
				QuantityDone:     decimal.Zero,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return op, nil
}

// Transition aplica la tabla genérica de transiciones, sin efectos de stock.
// Documentos terminales devuelven ErrAlreadyTerminal; transiciones fuera de
// tabla, ErrInvalidTransition.
func (uc *WorkflowUseCase) Transition(ctx context.Context, operationID int64, newStatus string) (*entity.Operation, error) {
	var updated *entity.Operation
	err := uc.txRunner.RunOperation(ctx, func(
		opRepo repository.OperationRepository,
		_ repository.OperationLineRepository,
		_ repository.ProductStockRepository,
		_ repository.StockMovementRepository,
		_ repository.LowStockAlertRepository,
		_ repository.ProductRepository,
	) error {
		op, err := opRepo.GetByIDForUpdate(operationID)
		if err != nil {
			return err
		}
		if op == nil {
			return domain.ErrNotFound
		}
		if entity.IsTerminalStatus(op.Status) {
			return domain.ErrAlreadyTerminal
		}
		if !entity.CanTransition(op.Status, newStatus) {
			return domain.ErrInvalidTransition
		}
		op.Status = newStatus
		op.UpdatedAt = time.Now()
		if err := opRepo.UpdateStatus(op.ID, op.Status, op.ValidatedAt); err != nil {
			return err
		}
		updated = op
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
