package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

// LedgerUseCase expone las operaciones públicas del motor de stock, cada una
// ejecutada como una unidad atómica (una transacción del TxRunner). El motor
// de documentos no usa este wrapper: construye su propio Ledger dentro de su
// transacción para que todas las líneas compartan el mismo Commit/Rollback.
type LedgerUseCase struct {
	txRunner TxRunner
	notifier Notifier
	log      *logger.Logger
}

// NewLedgerUseCase construye el caso de uso del libro de stock.
// notifier puede ser nil: la notificación es opcional y best-effort.
func NewLedgerUseCase(txRunner TxRunner, notifier Notifier, log *logger.Logger) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, notifier: notifier, log: log}
}

// MovementInput es la entrada común de las operaciones del libro.
type MovementInput struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	Operation  *entity.Operation // documento origen, para etiquetar el movimiento
	Actor      string
	Notes      string
}

// Increase suma stock en una ubicación y devuelve el saldo actualizado.
func (uc *LedgerUseCase) Increase(ctx context.Context, in MovementInput) (*entity.ProductStock, error) {
	var updated *entity.ProductStock
	var raised []*entity.LowStockAlert
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.ProductStockRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.LowStockAlertRepository,
		productRepo repository.ProductRepository,
	) error {
		led := NewLedger(stockRepo, movRepo, alertRepo, productRepo)
		stock, err := led.Increase(in.ProductID, in.LocationID, in.Quantity, in.Operation, in.Actor, in.Notes)
		if err != nil {
			return err
		}
		updated = stock
		raised = led.RaisedAlerts()
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.DispatchAlerts(ctx, raised)
	return updated, nil
}

// Decrease resta stock en modo estricto y devuelve el saldo actualizado.
func (uc *LedgerUseCase) Decrease(ctx context.Context, in MovementInput) (*entity.ProductStock, error) {
	var updated *entity.ProductStock
	var raised []*entity.LowStockAlert
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.ProductStockRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.LowStockAlertRepository,
		productRepo repository.ProductRepository,
	) error {
		led := NewLedger(stockRepo, movRepo, alertRepo, productRepo)
		stock, err := led.Decrease(in.ProductID, in.LocationID, in.Quantity, in.Operation, in.Actor, in.Notes)
		if err != nil {
			return err
		}
		updated = stock
		raised = led.RaisedAlerts()
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.DispatchAlerts(ctx, raised)
	return updated, nil
}

// Move traslada stock entre dos ubicaciones en una sola transacción:
// si la mitad de entrada falla, la salida también se deshace.
func (uc *LedgerUseCase) Move(ctx context.Context, in MovementInput, toLocationID string) error {
	var raised []*entity.LowStockAlert
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.ProductStockRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.LowStockAlertRepository,
		productRepo repository.ProductRepository,
	) error {
		led := NewLedger(stockRepo, movRepo, alertRepo, productRepo)
		if err := led.Move(in.ProductID, in.LocationID, toLocationID, in.Quantity, in.Operation, in.Actor, in.Notes); err != nil {
			return err
		}
		raised = led.RaisedAlerts()
		return nil
	})
	if err != nil {
		return err
	}
	uc.DispatchAlerts(ctx, raised)
	return nil
}

// AdjustAbsolute fija el saldo en la cantidad contada y devuelve el saldo resultante.
func (uc *LedgerUseCase) AdjustAbsolute(ctx context.Context, in MovementInput) (*entity.ProductStock, error) {
	var updated *entity.ProductStock
	var raised []*entity.LowStockAlert
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.ProductStockRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.LowStockAlertRepository,
		productRepo repository.ProductRepository,
	) error {
		led := NewLedger(stockRepo, movRepo, alertRepo, productRepo)
		stock, err := led.AdjustAbsolute(in.ProductID, in.LocationID, in.Quantity, in.Operation, in.Actor, in.Notes)
		if err != nil {
			return err
		}
		updated = stock
		raised = led.RaisedAlerts()
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.DispatchAlerts(ctx, raised)
	return updated, nil
}

// DispatchAlerts envía las notificaciones de stock bajo después del commit.
// Los errores del colaborador se loguean y se tragan: nunca afectan al caller.
func (uc *LedgerUseCase) DispatchAlerts(ctx context.Context, alerts []*entity.LowStockAlert) {
	if uc.notifier == nil {
		return
	}
	for _, alert := range alerts {
		if err := uc.notifier.NotifyLowStock(ctx, alert); err != nil && uc.log != nil {
			uc.log.Warn().Err(err).
				Str("product_id", alert.ProductID).
				Str("location_id", alert.LocationID).
				Msg("fallo al notificar stock bajo")
		}
	}
}

// NotifyTransfer envía la notificación de traslado completado (best-effort).
func (uc *LedgerUseCase) NotifyTransfer(ctx context.Context, op *entity.Operation, lines []*entity.OperationLine) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.NotifyTransferCompleted(ctx, op, lines); err != nil && uc.log != nil {
		uc.log.Warn().Err(err).
			Int64("operation_id", op.ID).
			Str("reference", op.ReferenceNumber).
			Msg("fallo al notificar traslado completado")
	}
}
