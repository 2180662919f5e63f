package operation

import (
	"context"
	"time"

	"github.com/jhoicas/stockmaster-api/internal/application/stock"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// Validate valida un documento y dispara los movimientos de stock que
// correspondan a su tipo, todo dentro de UNA transacción:
//
//  1. Bloquea la fila del documento (serializa validaciones concurrentes;
//     el perdedor observa ErrAlreadyTerminal).
//  2. Rechaza documentos terminales y documentos sin líneas.
//  3. Despacha por tipo contra el Ledger construido sobre los repos de la
//     misma transacción; escribe quantity_done por línea.
//  4. Estampa DONE + validated_at.
//
// Cualquier fallo deshace todas las mutaciones del llamado: ni estado parcial
// del documento ni stock a medias. El atajo DRAFT/WAITING/READY -> DONE es
// deliberadamente más permisivo que la tabla genérica de transiciones.
//
// allowPartial aplica solo a DELIVERY y TRANSFER: ante faltante, se cumple la
// cantidad disponible (quantity_done < quantity_demanded) en vez de fallar.
func (uc *WorkflowUseCase) Validate(ctx context.Context, operationID int64, actor string, allowPartial bool) (*entity.Operation, error) {
	var validated *entity.Operation
	var validatedLines []*entity.OperationLine
	var raised []*entity.LowStockAlert

	err := uc.txRunner.RunOperation(ctx, func(
		opRepo repository.OperationRepository,
		lineRepo repository.OperationLineRepository,
		stockRepo repository.ProductStockRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.LowStockAlertRepository,
		productRepo repository.ProductRepository,
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

		lines, err := lineRepo.ListByOperation(op.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyDocument
		}

		led := stock.NewLedger(stockRepo, movRepo, alertRepo, productRepo)

		switch op.OperationType {
		case entity.OperationTypeReceipt:
			// Entrada: proveedor -> ubicación destino. Nunca parcial.
			if op.DestinationLocationID == nil {
				return domain.ErrMissingLocation
			}
			for _, line := range lines {
				if _, err := led.Increase(line.ProductID, *op.DestinationLocationID, line.QuantityDemanded, op, actor, ""); err != nil {
					return err
				}
				line.QuantityDone = line.QuantityDemanded
				if err := lineRepo.UpdateDone(line.ID, line.QuantityDone); err != nil {
					return err
				}
			}

		case entity.OperationTypeDelivery:
			// Salida: ubicación origen -> cliente.
			if op.SourceLocationID == nil {
				return domain.ErrMissingLocation
			}
			for _, line := range lines {
				if allowPartial {
					_, done, err := led.DecreaseUpTo(line.ProductID, *op.SourceLocationID, line.QuantityDemanded, op, actor, "")
					if err != nil {
						return err
					}
					line.QuantityDone = done
				} else {
					if _, err := led.Decrease(line.ProductID, *op.SourceLocationID, line.QuantityDemanded, op, actor, ""); err != nil {
						return err
					}
					line.QuantityDone = line.QuantityDemanded
				}
				if err := lineRepo.UpdateDone(line.ID, line.QuantityDone); err != nil {
					return err
				}
			}

		case entity.OperationTypeTransfer:
			// Interno: origen -> destino, misma política parcial que DELIVERY.
			if op.SourceLocationID == nil || op.DestinationLocationID == nil {
				return domain.ErrMissingLocation
			}
			for _, line := range lines {
				if allowPartial {
					done, err := led.MoveUpTo(line.ProductID, *op.SourceLocationID, *op.DestinationLocationID, line.QuantityDemanded, op, actor, "")
					if err != nil {
						return err
					}
					line.QuantityDone = done
				} else {
					if err := led.Move(line.ProductID, *op.SourceLocationID, *op.DestinationLocationID, line.QuantityDemanded, op, actor, ""); err != nil {
						return err
					}
					line.QuantityDone = line.QuantityDemanded
				}
				if err := lineRepo.UpdateDone(line.ID, line.QuantityDone); err != nil {
					return err
				}
			}

		case entity.OperationTypeAdjustment:
			// Conteo: demanded se interpreta como la cantidad contada.
			// El campo origen hace de "ubicación contada".
			if op.SourceLocationID == nil {
				return domain.ErrMissingLocation
			}
			for _, line := range lines {
				if _, err := led.AdjustAbsolute(line.ProductID, *op.SourceLocationID, line.QuantityDemanded, op, actor, ""); err != nil {
					return err
				}
				line.QuantityDone = line.QuantityDemanded
				if err := lineRepo.UpdateDone(line.ID, line.QuantityDone); err != nil {
					return err
				}
			}

		default:
			return domain.ErrInvalidInput
		}

		now := time.Now()
		op.Status = entity.StatusDone
		op.ValidatedAt = &now
		op.UpdatedAt = now
		if err := opRepo.UpdateStatus(op.ID, op.Status, op.ValidatedAt); err != nil {
			return err
		}

		validated = op
		validatedLines = lines
		raised = led.RaisedAlerts()
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notificaciones fuera de la sección crítica: best-effort, nunca propagan.
	uc.dispatchAlerts(ctx, raised)
	if validated.OperationType == entity.OperationTypeTransfer {
		uc.notifyTransfer(ctx, validated, validatedLines)
	}
	return validated, nil
}

func (uc *WorkflowUseCase) dispatchAlerts(ctx context.Context, alerts []*entity.LowStockAlert) {
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

func (uc *WorkflowUseCase) notifyTransfer(ctx context.Context, op *entity.Operation, lines []*entity.OperationLine) {
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
