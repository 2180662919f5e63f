package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.ProductStockRepository = (*ProductStockRepo)(nil)

// ProductStockRepo implementación de ProductStockRepository sobre PostgreSQL
// (usable con pool o tx; las mutaciones siempre llegan vía tx).
type ProductStockRepo struct {
	q Querier
}

// NewProductStockRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewProductStockRepository(q Querier) *ProductStockRepo {
	return &ProductStockRepo{q: q}
}

// Get obtiene el saldo actual de un producto en una ubicación (0 si no hay fila).
func (r *ProductStockRepo) Get(productID, locationID string) (*entity.ProductStock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM product_stock WHERE product_id = $1 AND location_id = $2`
	var s entity.ProductStock
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.ProductStock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetOrCreateForUpdate bloquea la fila del saldo (SELECT FOR UPDATE), creándola
// en 0 si no existe. El INSERT ... ON CONFLICT DO NOTHING garantiza la fila aun
// con dos transacciones concurrentes; el SELECT posterior toma el bloqueo.
func (r *ProductStockRepo) GetOrCreateForUpdate(productID, locationID string) (*entity.ProductStock, error) {
	insert := `
		INSERT INTO product_stock (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, location_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, productID, locationID); err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}

	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM product_stock WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.ProductStock
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Save actualiza la cantidad de un saldo ya bloqueado.
func (r *ProductStockRepo) Save(stock *entity.ProductStock) error {
	query := `
		UPDATE product_stock SET quantity = $3, updated_at = $4
		WHERE product_id = $1 AND location_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		stock.ProductID, stock.LocationID, stock.Quantity, stock.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save stock: %w", err)
	}
	return nil
}

// ListByLocation lista los saldos de una ubicación.
func (r *ProductStockRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.ProductStock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM product_stock WHERE location_id = $1
		ORDER BY product_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock by location: %w", err)
	}
	defer rows.Close()
	return scanStocks(rows)
}

// ListByProduct lista los saldos de un producto en todas sus ubicaciones.
func (r *ProductStockRepo) ListByProduct(productID string) ([]*entity.ProductStock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM product_stock WHERE product_id = $1 ORDER BY location_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()
	return scanStocks(rows)
}

func scanStocks(rows pgx.Rows) ([]*entity.ProductStock, error) {
	var list []*entity.ProductStock
	for rows.Next() {
		var s entity.ProductStock
		if err := rows.Scan(&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
