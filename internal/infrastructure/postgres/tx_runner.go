package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stockmaster-api/internal/application/operation"
	"github.com/jhoicas/stockmaster-api/internal/application/stock"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner and operation.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ operation.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.ProductStockRepository,
	movRepo repository.StockMovementRepository,
	alertRepo repository.LowStockAlertRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewProductStockRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	alertRepo := NewLowStockAlertRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(stockRepo, movRepo, alertRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOperation inicia una transacción con los repos del motor de documentos
// además de los del libro de stock (para la validación de documentos).
func (r *TxRunner) RunOperation(ctx context.Context, fn func(
	opRepo repository.OperationRepository,
	lineRepo repository.OperationLineRepository,
	stockRepo repository.ProductStockRepository,
	movRepo repository.StockMovementRepository,
	alertRepo repository.LowStockAlertRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	opRepo := NewOperationRepository(tx)
	lineRepo := NewOperationLineRepository(tx)
	stockRepo := NewProductStockRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	alertRepo := NewLowStockAlertRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(opRepo, lineRepo, stockRepo, movRepo, alertRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
