package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// Ledger es el motor de libro de stock atado a UNA transacción: muta saldos
// bajo bloqueo de fila (SELECT FOR UPDATE), anota cada cambio en el libro de
// movimientos y evalúa el umbral de alerta. Se construye dentro del callback
// del TxRunner (o del RunOperation del motor de documentos) con los
// repositorios de esa transacción, al estilo de un caso de uso ...InTx.
//
// Disciplina: bloquear fila -> leer -> mutar -> guardar, todo dentro del mismo
// alcance del bloqueo, que se libera al hacer Commit o Rollback.
type Ledger struct {
	stocks   repository.ProductStockRepository
	movs     repository.StockMovementRepository
	alerts   repository.LowStockAlertRepository
	products repository.ProductRepository

	raised []*entity.LowStockAlert // alertas creadas en esta transacción, para notificar post-commit
}

// NewLedger construye el motor sobre los repositorios de la transacción actual.
func NewLedger(
	stocks repository.ProductStockRepository,
	movs repository.StockMovementRepository,
	alerts repository.LowStockAlertRepository,
	products repository.ProductRepository,
) *Ledger {
	return &Ledger{stocks: stocks, movs: movs, alerts: alerts, products: products}
}

// RaisedAlerts devuelve las alertas creadas durante la transacción.
// El caller las despacha al Notifier después del commit.
func (l *Ledger) RaisedAlerts() []*entity.LowStockAlert {
	return l.raised
}

// Increase suma qty al saldo de (producto, ubicación), resuelve alertas si el
// nuevo saldo supera el umbral y anota el movimiento con to_location.
// Falla con ErrInvalidQuantity si qty <= 0 (sin mutación alguna).
func (l *Ledger) Increase(productID, locationID string, qty decimal.Decimal, op *entity.Operation, actor, notes string) (*entity.ProductStock, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := l.getProduct(productID)
	if err != nil {
		return nil, err
	}

	// Bloquea la fila del saldo (la crea en 0 si no existe, bajo el bloqueo)
	stock, err := l.stocks.GetOrCreateForUpdate(productID, locationID)
	if err != nil {
		return nil, err
	}
	stock.Quantity = stock.Quantity.Add(qty)
	stock.UpdatedAt = time.Now()
	if err := l.stocks.Save(stock); err != nil {
		return nil, err
	}

	if err := l.resolveAlert(product, locationID, stock.Quantity); err != nil {
		return nil, err
	}

	if err := l.appendMovement(productID, nil, &locationID, qty, stock.Quantity, op, actor, notes); err != nil {
		return nil, err
	}
	return stock, nil
}

// Decrease resta qty en modo estricto: si el disponible no alcanza devuelve
// InsufficientStockError sin mutar nada.
func (l *Ledger) Decrease(productID, locationID string, qty decimal.Decimal, op *entity.Operation, actor, notes string) (*entity.ProductStock, error) {
	stock, _, err := l.decreaseLocked(productID, locationID, qty, op, actor, notes, false)
	return stock, err
}

// DecreaseUpTo resta hasta qty según disponibilidad (política de cumplimiento
// parcial): devuelve la cantidad efectivamente restada, que puede ser menor a
// qty e incluso cero (en cuyo caso no anota movimiento).
func (l *Ledger) DecreaseUpTo(productID, locationID string, qty decimal.Decimal, op *entity.Operation, actor, notes string) (*entity.ProductStock, decimal.Decimal, error) {
	return l.decreaseLocked(productID, locationID, qty, op, actor, notes, true)
}

// decreaseLocked comparte la ruta "fallar rápido" y "cumplir parcial": la
// verificación de disponibilidad se hace bajo el mismo bloqueo de fila y el
// modo estricto/parcial se decide por parámetro, no por flujos duplicados.
func (l *Ledger) decreaseLocked(productID, locationID string, qty decimal.Decimal, op *entity.Operation, actor, notes string, partial bool) (*entity.ProductStock, decimal.Decimal, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return nil, decimal.Zero, domain.ErrInvalidQuantity
	}
	product, err := l.getProduct(productID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	stock, err := l.stocks.GetOrCreateForUpdate(productID, locationID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	done := qty
	if stock.Quantity.LessThan(qty) {
		if !partial {
			return nil, decimal.Zero, &domain.InsufficientStockError{Available: stock.Quantity, Requested: qty}
		}
		done = stock.Quantity
	}
	if done.IsZero() {
		// Nada disponible: cumplimiento 0, sin movimiento ni cambio de saldo
		return stock, decimal.Zero, nil
	}

	stock.Quantity = stock.Quantity.Sub(done)
	stock.UpdatedAt = time.Now()
	if err := l.stocks.Save(stock); err != nil {
		return nil, decimal.Zero, err
	}

	if err := l.checkAndCreateAlert(product, locationID, stock.Quantity); err != nil {
		return nil, decimal.Zero, err
	}

	if err := l.appendMovement(productID, &locationID, nil, done, stock.Quantity, op, actor, notes); err != nil {
		return nil, decimal.Zero, err
	}
	return stock, done, nil
}

// Move traslada qty entre dos ubicaciones como decrease(origen) + increase
// (destino) dentro de la transacción del caller: si la mitad de entrada falla
// tras la salida, el rollback de la transacción restaura el saldo origen.
// El orden de bloqueo es el orden estable de las claves de ubicación, para no
// generar deadlock entre dos traslados cruzados sobre las mismas ubicaciones.
func (l *Ledger) Move(productID, fromLocationID, toLocationID string, qty decimal.Decimal, op *entity.Operation, actor, notes string) error {
	if !qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidQuantity
	}
	if fromLocationID == toLocationID {
		return domain.ErrInvalidInput
	}
	if err := l.lockPairInOrder(productID, fromLocationID, toLocationID); err != nil {
		return err
	}
	if _, err := l.Decrease(productID, fromLocationID, qty, op, actor, "Transfer Out: "+notes); err != nil {
		return err
	}
	if _, err := l.Increase(productID, toLocationID, qty, op, actor, "Transfer In: "+notes); err != nil {
		return err
	}
	return nil
}

// MoveUpTo traslada hasta qty según disponibilidad en origen y devuelve la
// cantidad efectivamente trasladada (política parcial de los traslados).
func (l *Ledger) MoveUpTo(productID, fromLocationID, toLocationID string, qty decimal.Decimal, op *entity.Operation, actor, notes string) (decimal.Decimal, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	if fromLocationID == toLocationID {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if err := l.lockPairInOrder(productID, fromLocationID, toLocationID); err != nil {
		return decimal.Zero, err
	}
	_, done, err := l.DecreaseUpTo(productID, fromLocationID, qty, op, actor, "Transfer Out: "+notes)
	if err != nil {
		return decimal.Zero, err
	}
	if done.IsZero() {
		return decimal.Zero, nil
	}
	if _, err := l.Increase(productID, toLocationID, done, op, actor, "Transfer In: "+notes); err != nil {
		return decimal.Zero, err
	}
	return done, nil
}

// AdjustAbsolute fija el saldo en newQty (conteo físico). diff == 0 es no-op:
// ni movimiento ni reevaluación de alertas. En otro caso anota exactamente un
// movimiento de magnitud |diff| con la dirección que implica el signo.
func (l *Ledger) AdjustAbsolute(productID, locationID string, newQty decimal.Decimal, op *entity.Operation, actor, notes string) (*entity.ProductStock, error) {
	if newQty.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := l.getProduct(productID)
	if err != nil {
		return nil, err
	}

	stock, err := l.stocks.GetOrCreateForUpdate(productID, locationID)
	if err != nil {
		return nil, err
	}
	diff := newQty.Sub(stock.Quantity)
	if diff.IsZero() {
		return stock, nil
	}

	stock.Quantity = newQty
	stock.UpdatedAt = time.Now()
	if err := l.stocks.Save(stock); err != nil {
		return nil, err
	}

	if diff.GreaterThan(decimal.Zero) {
		if err := l.resolveAlert(product, locationID, stock.Quantity); err != nil {
			return nil, err
		}
		if err := l.appendMovement(productID, nil, &locationID, diff, stock.Quantity, op, actor, notes); err != nil {
			return nil, err
		}
	} else {
		if err := l.checkAndCreateAlert(product, locationID, stock.Quantity); err != nil {
			return nil, err
		}
		if err := l.appendMovement(productID, &locationID, nil, diff.Abs(), stock.Quantity, op, actor, notes); err != nil {
			return nil, err
		}
	}
	return stock, nil
}

// lockPairInOrder pre-bloquea la fila de menor clave cuando el destino ordena
// antes que el origen, de modo que dos traslados opuestos sobre el mismo par
// adquieran los bloqueos en el mismo orden.
func (l *Ledger) lockPairInOrder(productID, fromLocationID, toLocationID string) error {
	if toLocationID < fromLocationID {
		if _, err := l.stocks.GetOrCreateForUpdate(productID, toLocationID); err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) getProduct(productID string) (*entity.Product, error) {
	product, err := l.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// checkAndCreateAlert crea una alerta si el saldo quedó en o bajo el umbral y
// no hay ya una activa para el par (creación idempotente).
func (l *Ledger) checkAndCreateAlert(product *entity.Product, locationID string, qty decimal.Decimal) error {
	if qty.GreaterThan(product.MinStockLevel) {
		return nil
	}
	active, err := l.alerts.HasActive(product.ID, locationID)
	if err != nil {
		return err
	}
	if active {
		return nil
	}
	alert := &entity.LowStockAlert{
		ID:              uuid.New().String(),
		ProductID:       product.ID,
		LocationID:      locationID,
		CurrentQuantity: qty,
		Threshold:       product.MinStockLevel,
		CreatedAt:       time.Now(),
	}
	if err := l.alerts.Create(alert); err != nil {
		return err
	}
	l.raised = append(l.raised, alert)
	return nil
}

// resolveAlert resuelve todas las alertas activas del par si el saldo superó el umbral.
func (l *Ledger) resolveAlert(product *entity.Product, locationID string, qty decimal.Decimal) error {
	if !qty.GreaterThan(product.MinStockLevel) {
		return nil
	}
	return l.alerts.ResolveActive(product.ID, locationID, qty, time.Now())
}

// appendMovement anota una entrada inmutable del libro con la foto del saldo.
func (l *Ledger) appendMovement(productID string, from, to *string, qty, balanceAfter decimal.Decimal, op *entity.Operation, actor, notes string) error {
	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		ProductID:    productID,
		Quantity:     qty,
		BalanceAfter: balanceAfter,
		Actor:        actor,
		Notes:        notes,
		Timestamp:    time.Now(),
	}
	if from != nil {
		v := *from
		mov.FromLocationID = &v
	}
	if to != nil {
		v := *to
		mov.ToLocationID = &v
	}
	if op != nil {
		mov.TransactionType = op.OperationType
		id := op.ID
		mov.OperationID = &id
	}
	return l.movs.Create(mov)
}
