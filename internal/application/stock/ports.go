package stock

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa transacción. Garantiza atomicidad para el motor
// de stock: cualquier error deshace todas las mutaciones del callback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.ProductStockRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.LowStockAlertRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Notifier es el colaborador de notificaciones. Es best-effort: se invoca
// fuera de la transacción y sus errores se loguean sin propagarse jamás al
// caller; su ausencia (nil) no bloquea ninguna mutación de stock.
type Notifier interface {
	NotifyLowStock(ctx context.Context, alert *entity.LowStockAlert) error
	NotifyTransferCompleted(ctx context.Context, op *entity.Operation, lines []*entity.OperationLine) error
}
