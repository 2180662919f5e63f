package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.OperationRepository = (*OperationRepo)(nil)

// OperationRepo implementación del puerto OperationRepository sobre PostgreSQL.
// El ID es bigserial: lo genera la DB y el número de referencia se estampa
// después, en la misma transacción.
type OperationRepo struct {
	q Querier
}

// NewOperationRepository construye el adaptador de documentos. Pasar pool o tx (Querier).
func NewOperationRepository(q Querier) *OperationRepo {
	return &OperationRepo{q: q}
}

const operationColumns = `id, operation_type, reference_number, status,
		source_location_id, destination_location_id, partner_id, partner_name,
		created_by, created_at, updated_at, validated_at`

// Create inserta el documento y devuelve el ID generado (RETURNING id).
func (r *OperationRepo) Create(op *entity.Operation) (int64, error) {
	query := `
		INSERT INTO operations (operation_type, reference_number, status,
			source_location_id, destination_location_id, partner_id, partner_name,
			created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		op.OperationType, op.ReferenceNumber, op.Status,
		op.SourceLocationID, op.DestinationLocationID, op.PartnerID, op.PartnerName,
		op.CreatedBy, op.CreatedAt, op.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert operation: %w", err)
	}
	return id, nil
}

// StampReference asigna el número de referencia (una sola vez).
func (r *OperationRepo) StampReference(id int64, reference string) error {
	query := `
		UPDATE operations SET reference_number = $2
		WHERE id = $1 AND reference_number = ''`
	_, err := r.q.Exec(context.Background(), query, id, reference)
	if err != nil {
		return fmt.Errorf("stamp reference: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *OperationRepo) GetByID(id int64) (*entity.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate bloquea la fila del documento (SELECT FOR UPDATE) para
// serializar validaciones concurrentes sobre el mismo documento.
func (r *OperationRepo) GetByIDForUpdate(id int64) (*entity.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *OperationRepo) scanOne(query string, id int64) (*entity.Operation, error) {
	var op entity.Operation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&op.ID, &op.OperationType, &op.ReferenceNumber, &op.Status,
		&op.SourceLocationID, &op.DestinationLocationID, &op.PartnerID, &op.PartnerName,
		&op.CreatedBy, &op.CreatedAt, &op.UpdatedAt, &op.ValidatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}
	return &op, nil
}

// UpdateStatus actualiza el estado del documento (y validated_at si aplica).
func (r *OperationRepo) UpdateStatus(id int64, status string, validatedAt *time.Time) error {
	query := `
		UPDATE operations SET status = $2, validated_at = COALESCE($3, validated_at), updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, validatedAt)
	if err != nil {
		return fmt.Errorf("update operation status: %w", err)
	}
	return nil
}

// List lista documentos con filtros opcionales por tipo y estado.
func (r *OperationRepo) List(operationType, status string, limit, offset int) ([]*entity.Operation, error) {
	query := `
		SELECT ` + operationColumns + `
		FROM operations
		WHERE ($1 = '' OR operation_type = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, operationType, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Operation
	for rows.Next() {
		var op entity.Operation
		if err := rows.Scan(
			&op.ID, &op.OperationType, &op.ReferenceNumber, &op.Status,
			&op.SourceLocationID, &op.DestinationLocationID, &op.PartnerID, &op.PartnerName,
			&op.CreatedBy, &op.CreatedAt, &op.UpdatedAt, &op.ValidatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		list = append(list, &op)
	}
	return list, rows.Err()
}

var _ repository.OperationLineRepository = (*OperationLineRepo)(nil)

// OperationLineRepo implementación del puerto OperationLineRepository sobre PostgreSQL.
type OperationLineRepo struct {
	q Querier
}

// NewOperationLineRepository construye el adaptador de líneas. Pasar pool o tx (Querier).
func NewOperationLineRepository(q Querier) *OperationLineRepo {
	return &OperationLineRepo{q: q}
}

// Create persiste una línea de documento.
func (r *OperationLineRepo) Create(line *entity.OperationLine) error {
	query := `
		INSERT INTO operation_lines (id, operation_id, product_id, quantity_demanded, quantity_done)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.OperationID, line.ProductID, line.QuantityDemanded, line.QuantityDone,
	)
	if err != nil {
		return fmt.Errorf("insert operation line: %w", err)
	}
	return nil
}

// ListByOperation lista las líneas de un documento.
func (r *OperationLineRepo) ListByOperation(operationID int64) ([]*entity.OperationLine, error) {
	query := `
		SELECT id, operation_id, product_id, quantity_demanded, quantity_done
		FROM operation_lines WHERE operation_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, operationID)
	if err != nil {
		return nil, fmt.Errorf("list operation lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.OperationLine
	for rows.Next() {
		var l entity.OperationLine
		if err := rows.Scan(&l.ID, &l.OperationID, &l.ProductID, &l.QuantityDemanded, &l.QuantityDone); err != nil {
			return nil, fmt.Errorf("scan operation line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// UpdateDone escribe la cantidad cumplida de una línea (solo en la validación).
func (r *OperationLineRepo) UpdateDone(lineID string, quantityDone decimal.Decimal) error {
	query := `UPDATE operation_lines SET quantity_done = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, lineID, quantityDone)
	if err != nil {
		return fmt.Errorf("update line done: %w", err)
	}
	return nil
}
