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

var _ repository.LowStockAlertRepository = (*LowStockAlertRepo)(nil)

// LowStockAlertRepo implementación del puerto LowStockAlertRepository sobre PostgreSQL.
type LowStockAlertRepo struct {
	q Querier
}

// NewLowStockAlertRepository construye el adaptador de alertas. Pasar pool o tx (Querier).
func NewLowStockAlertRepository(q Querier) *LowStockAlertRepo {
	return &LowStockAlertRepo{q: q}
}

const alertColumns = `id, product_id, location_id, current_quantity, threshold,
		is_resolved, is_read, created_at, resolved_at`

// Create persiste una nueva alerta.
func (r *LowStockAlertRepo) Create(alert *entity.LowStockAlert) error {
	query := `
		INSERT INTO low_stock_alerts (id, product_id, location_id, current_quantity,
			threshold, is_resolved, is_read, created_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.ProductID, alert.LocationID, alert.CurrentQuantity,
		alert.Threshold, alert.IsResolved, alert.IsRead, alert.CreatedAt, alert.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID.
func (r *LowStockAlertRepo) GetByID(id string) (*entity.LowStockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM low_stock_alerts WHERE id = $1`
	var a entity.LowStockAlert
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.ProductID, &a.LocationID, &a.CurrentQuantity, &a.Threshold,
		&a.IsResolved, &a.IsRead, &a.CreatedAt, &a.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return &a, nil
}

// HasActive indica si existe una alerta activa (no resuelta) para el par.
func (r *LowStockAlertRepo) HasActive(productID, locationID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM low_stock_alerts
			WHERE product_id = $1 AND location_id = $2 AND is_resolved = false
		)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(&exists); err != nil {
		return false, fmt.Errorf("has active alert: %w", err)
	}
	return exists, nil
}

// ResolveActive resuelve todas las alertas activas del par, estampando la
// cantidad con la que el saldo cruzó el umbral de vuelta.
func (r *LowStockAlertRepo) ResolveActive(productID, locationID string, quantity decimal.Decimal, at time.Time) error {
	query := `
		UPDATE low_stock_alerts
		SET is_resolved = true, resolved_at = $3, current_quantity = $4
		WHERE product_id = $1 AND location_id = $2 AND is_resolved = false`
	_, err := r.q.Exec(context.Background(), query, productID, locationID, at, quantity)
	if err != nil {
		return fmt.Errorf("resolve alerts: %w", err)
	}
	return nil
}

// ListActive lista las alertas activas, más reciente primero.
func (r *LowStockAlertRepo) ListActive(limit, offset int) ([]*entity.LowStockAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM low_stock_alerts WHERE is_resolved = false
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list active alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.LowStockAlert
	for rows.Next() {
		var a entity.LowStockAlert
		if err := rows.Scan(
			&a.ID, &a.ProductID, &a.LocationID, &a.CurrentQuantity, &a.Threshold,
			&a.IsResolved, &a.IsRead, &a.CreatedAt, &a.ResolvedAt,
		); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// MarkRead marca una alerta como leída.
func (r *LowStockAlertRepo) MarkRead(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE low_stock_alerts SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	return nil
}
