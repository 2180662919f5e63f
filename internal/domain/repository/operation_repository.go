package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// OperationRepository define el puerto de persistencia para documentos.
type OperationRepository interface {
	// Create inserta el documento y devuelve su ID numérico generado.
	// El número de referencia se estampa después, en la misma transacción.
	Create(op *entity.Operation) (int64, error)
	// StampReference asigna el número de referencia una única vez.
	StampReference(id int64, reference string) error
	GetByID(id int64) (*entity.Operation, error)
	// GetByIDForUpdate bloquea la fila del documento (SELECT FOR UPDATE) para
	// serializar validaciones concurrentes sobre el mismo documento.
	GetByIDForUpdate(id int64) (*entity.Operation, error)
	UpdateStatus(id int64, status string, validatedAt *time.Time) error
	List(operationType, status string, limit, offset int) ([]*entity.Operation, error)
}

// OperationLineRepository define el puerto para líneas de documento.
type OperationLineRepository interface {
	Create(line *entity.OperationLine) error
	ListByOperation(operationID int64) ([]*entity.OperationLine, error)
	// UpdateDone escribe quantity_done; solo la validación lo invoca.
	UpdateDone(lineID string, quantityDone decimal.Decimal) error
}
