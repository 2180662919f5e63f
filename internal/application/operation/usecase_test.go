package operation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/operation"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memDB simula la base completa del motor de documentos (documentos, líneas y
// el lado de stock). El fakeTxRunner clona el estado antes del callback y lo
// restaura ante error, como un ROLLBACK real.
// ──────────────────────────────────────────────────────────────────────────────

const (
	prodArroz  = "prod-arroz"
	prodAzucar = "prod-azucar"
	locOrigen  = "loc-origen"
	locDestino = "loc-destino"
)

type memDB struct {
	nextOpID   int64
	operations map[int64]*entity.Operation
	lines      map[string]*entity.OperationLine
	products   map[string]*entity.Product
	stocks     map[string]*entity.ProductStock
	movements  []*entity.StockMovement
	alerts     []*entity.LowStockAlert
}

func newMemDB() *memDB {
	return &memDB{
		operations: map[int64]*entity.Operation{},
		lines:      map[string]*entity.OperationLine{},
		products: map[string]*entity.Product{
			prodArroz: {
				ID:            prodArroz,
				Name:          "Arroz blanco",
				SKU:           "ARR-001",
				UOM:           "kg",
				MinStockLevel: decimal.NewFromInt(5),
			},
			prodAzucar: {
				ID:            prodAzucar,
				Name:          "Azúcar refinada",
				SKU:           "AZU-001",
				UOM:           "kg",
				MinStockLevel: decimal.NewFromInt(2),
			},
		},
		stocks: map[string]*entity.ProductStock{},
	}
}

func key(productID, locationID string) string { return productID + "|" + locationID }

func (db *memDB) seedStock(productID, locationID string, qty int64) {
	db.stocks[key(productID, locationID)] = &entity.ProductStock{
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   decimal.NewFromInt(qty),
		UpdatedAt:  time.Now(),
	}
}

func (db *memDB) balance(productID, locationID string) decimal.Decimal {
	if st, ok := db.stocks[key(productID, locationID)]; ok {
		return st.Quantity
	}
	return decimal.Zero
}

func (db *memDB) linesOf(operationID int64) []*entity.OperationLine {
	var out []*entity.OperationLine
	for _, l := range db.lines {
		if l.OperationID == operationID {
			out = append(out, l)
		}
	}
	return out
}

func (db *memDB) clone() *memDB {
	c := &memDB{
		nextOpID:   db.nextOpID,
		operations: map[int64]*entity.Operation{},
		lines:      map[string]*entity.OperationLine{},
		products:   map[string]*entity.Product{},
		stocks:     map[string]*entity.ProductStock{},
	}
	for k, v := range db.operations {
		cp := *v
		c.operations[k] = &cp
	}
	for k, v := range db.lines {
		cp := *v
		c.lines[k] = &cp
	}
	for k, v := range db.products {
		cp := *v
		c.products[k] = &cp
	}
	for k, v := range db.stocks {
		cp := *v
		c.stocks[k] = &cp
	}
	for _, m := range db.movements {
		cp := *m
		c.movements = append(c.movements, &cp)
	}
	for _, a := range db.alerts {
		cp := *a
		c.alerts = append(c.alerts, &cp)
	}
	return c
}

// ── Repos fake ────────────────────────────────────────────────────────────────

type fakeOpRepo struct{ db *memDB }

func (r *fakeOpRepo) Create(op *entity.Operation) (int64, error) {
	r.db.nextOpID++
	cp := *op
	cp.ID = r.db.nextOpID
	r.db.operations[cp.ID] = &cp
	return cp.ID, nil
}

func (r *fakeOpRepo) StampReference(id int64, reference string) error {
	op, ok := r.db.operations[id]
	if !ok {
		return domain.ErrNotFound
	}
	if op.ReferenceNumber == "" {
		op.ReferenceNumber = reference
	}
	return nil
}

func (r *fakeOpRepo) GetByID(id int64) (*entity.Operation, error) {
	op, ok := r.db.operations[id]
	if !ok {
		return nil, nil
	}
	cp := *op
	return &cp, nil
}

func (r *fakeOpRepo) GetByIDForUpdate(id int64) (*entity.Operation, error) { return r.GetByID(id) }

func (r *fakeOpRepo) UpdateStatus(id int64, status string, validatedAt *time.Time) error {
	op, ok := r.db.operations[id]
	if !ok {
		return domain.ErrNotFound
	}
	op.Status = status
	if validatedAt != nil {
		op.ValidatedAt = validatedAt
	}
	op.UpdatedAt = time.Now()
	return nil
}

func (r *fakeOpRepo) List(operationType, status string, limit, offset int) ([]*entity.Operation, error) {
	var out []*entity.Operation
	for _, op := range r.db.operations {
		if operationType != "" && op.OperationType != operationType {
			continue
		}
		if status != "" && op.Status != status {
			continue
		}
		out = append(out, op)
	}
	return out, nil
}

type fakeLineRepo struct{ db *memDB }

func (r *fakeLineRepo) Create(line *entity.OperationLine) error {
	cp := *line
	r.db.lines[cp.ID] = &cp
	return nil
}

func (r *fakeLineRepo) ListByOperation(operationID int64) ([]*entity.OperationLine, error) {
	return r.db.linesOf(operationID), nil
}

func (r *fakeLineRepo) UpdateDone(lineID string, quantityDone decimal.Decimal) error {
	line, ok := r.db.lines[lineID]
	if !ok {
		return domain.ErrNotFound
	}
	line.QuantityDone = quantityDone
	return nil
}

type fakeProductRepo struct{ db *memDB }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.db.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return r.db.products[id], nil }
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }
func (r *fakeProductRepo) List(_, _ int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Search(_ string, _, _ int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error { return nil }

type fakeStockRepo struct{ db *memDB }

func (r *fakeStockRepo) Get(productID, locationID string) (*entity.ProductStock, error) {
	if st, ok := r.db.stocks[key(productID, locationID)]; ok {
		cp := *st
		return &cp, nil
	}
	return &entity.ProductStock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
}

func (r *fakeStockRepo) GetOrCreateForUpdate(productID, locationID string) (*entity.ProductStock, error) {
	k := key(productID, locationID)
	if _, ok := r.db.stocks[k]; !ok {
		r.db.stocks[k] = &entity.ProductStock{
			ProductID:  productID,
			LocationID: locationID,
			Quantity:   decimal.Zero,
			UpdatedAt:  time.Now(),
		}
	}
	cp := *r.db.stocks[k]
	return &cp, nil
}

func (r *fakeStockRepo) Save(st *entity.ProductStock) error {
	cp := *st
	r.db.stocks[key(st.ProductID, st.LocationID)] = &cp
	return nil
}

func (r *fakeStockRepo) ListByLocation(_ string, _, _ int) ([]*entity.ProductStock, error) {
	return nil, nil
}
func (r *fakeStockRepo) ListByProduct(_ string) ([]*entity.ProductStock, error) { return nil, nil }

type fakeMovRepo struct{ db *memDB }

func (r *fakeMovRepo) Create(m *entity.StockMovement) error {
	r.db.movements = append(r.db.movements, m)
	return nil
}
func (r *fakeMovRepo) ListByProduct(_ string, _, _ int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovRepo) ListByLocation(_ string, _, _ int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovRepo) ListByOperation(operationID int64) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.db.movements {
		if m.OperationID != nil && *m.OperationID == operationID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeAlertRepo struct{ db *memDB }

func (r *fakeAlertRepo) Create(a *entity.LowStockAlert) error {
	r.db.alerts = append(r.db.alerts, a)
	return nil
}
func (r *fakeAlertRepo) GetByID(_ string) (*entity.LowStockAlert, error) { return nil, nil }
func (r *fakeAlertRepo) HasActive(productID, locationID string) (bool, error) {
	for _, a := range r.db.alerts {
		if a.ProductID == productID && a.LocationID == locationID && !a.IsResolved {
			return true, nil
		}
	}
	return false, nil
}
func (r *fakeAlertRepo) ResolveActive(productID, locationID string, quantity decimal.Decimal, at time.Time) error {
	for _, a := range r.db.alerts {
		if a.ProductID == productID && a.LocationID == locationID && !a.IsResolved {
			a.IsResolved = true
			a.CurrentQuantity = quantity
			resolvedAt := at
			a.ResolvedAt = &resolvedAt
		}
	}
	return nil
}
func (r *fakeAlertRepo) ListActive(_, _ int) ([]*entity.LowStockAlert, error) { return nil, nil }
func (r *fakeAlertRepo) MarkRead(_ string) error                              { return nil }

// fakeTxRunner implementa el TxRunner del motor de documentos con semántica de
// rollback por snapshot.
type fakeTxRunner struct{ db *memDB }

func (r *fakeTxRunner) RunOperation(_ context.Context, fn func(
	opRepo repository.OperationRepository,
	lineRepo repository.OperationLineRepository,
	stockRepo repository.ProductStockRepository,
	movRepo repository.StockMovementRepository,
	alertRepo repository.LowStockAlertRepository,
	productRepo repository.ProductRepository,
) error) error {
	snapshot := r.db.clone()
	err := fn(&fakeOpRepo{r.db}, &fakeLineRepo{r.db}, &fakeStockRepo{r.db}, &fakeMovRepo{r.db}, &fakeAlertRepo{r.db}, &fakeProductRepo{r.db})
	if err != nil {
		*r.db = *snapshot
	}
	return err
}

// fakeNotifier registra notificaciones; puede forzarse a fallar.
type fakeNotifier struct {
	lowStock  []*entity.LowStockAlert
	transfers []*entity.Operation
	fail      bool
}

func (n *fakeNotifier) NotifyLowStock(_ context.Context, alert *entity.LowStockAlert) error {
	if n.fail {
		return errors.New("smtp caído")
	}
	n.lowStock = append(n.lowStock, alert)
	return nil
}

func (n *fakeNotifier) NotifyTransferCompleted(_ context.Context, op *entity.Operation, _ []*entity.OperationLine) error {
	if n.fail {
		return errors.New("smtp caído")
	}
	n.transfers = append(n.transfers, op)
	return nil
}

func newWorkflow(db *memDB, notifier *fakeNotifier) *operation.WorkflowUseCase {
	if notifier == nil {
		return operation.NewWorkflowUseCase(&fakeTxRunner{db}, nil, nil)
	}
	return operation.NewWorkflowUseCase(&fakeTxRunner{db}, notifier, nil)
}

func strPtr(s string) *string { return &s }
func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }
func ctx() context.Context { return context.Background() }

// ──────────────────────────────────────────────────────────────────────────────
// Tests de creación de documentos
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkflow_Create_EstampaReferenciaYDraft(t *testing.T) {
	db := newMemDB()
	uc := newWorkflow(db, nil)

	op, err := uc.Create(ctx(), operation.CreateInput{
		OperationType:         entity.OperationTypeReceipt,
		DestinationLocationID: strPtr(locDestino),
		PartnerName:           "Proveedor SA",
		CreatedBy:             "tester",
		Lines: []operation.CreateLineInput{
			{ProductID: prodArroz, QuantityDemanded: dec(10)},
			{ProductID: prodAzucar, QuantityDemanded: dec(4)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), op.ID)
	assert.Equal(t, "REC-000001", op.ReferenceNumber)
	assert.Equal(t, entity.StatusDraft, op.Status)
	assert.Nil(t, op.ValidatedAt)

	lines := db.linesOf(op.ID)
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, line.QuantityDone.IsZero(), "quantity_done inicia en cero")
	}
	// Crear no mueve stock
	assert.True(t, db.balance(prodArroz, locDestino).IsZero())
}

func TestWorkflow_Create_ReferenciasConsecutivas(t *testing.T) {
	db := newMemDB()
	uc := newWorkflow(db, nil)

	first, err := uc.Create(ctx(), operation.CreateInput{
		OperationType:         entity.OperationTypeReceipt,
		DestinationLocationID: strPtr(locDestino),
		CreatedBy:             "tester",
		Lines:                 []operation.CreateLineInput{{ProductID: prodArroz, QuantityDemanded: dec(1)}},
	})
	require.NoError(t, err)
	second, err := uc.Create(ctx(), operation.CreateInput{
		OperationType:    entity.OperationTypeDelivery,
		SourceLocationID: strPtr(locOrigen),
		CreatedBy:        "tester",
		Lines:            []operation.CreateLineInput{{ProductID: prodArroz, QuantityDemanded: dec(1)}},
	})
	require.NoError(t, err)

	assert.Equal(t, "REC-000001", first.ReferenceNumber)
	assert.Equal(t, "DEL-000002", second.ReferenceNumber, "el consecutivo es global, no por tipo")
}

func TestWorkflow_Create_TipoInvalido(t *testing.T) {
	db := newMemDB()
	uc := newWorkflow(db, nil)

	_, err := uc.Create(ctx(), operation.CreateInput{OperationType: "PURCHASE", CreatedBy: "tester"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWorkflow_Create_LineaConCantidadInvalida(t *testing.T) {
	db := newMemDB()
	uc := newWorkflow(db, nil)

	_, err := uc.Create(ctx(), operation.CreateInput{
		OperationType:         entity.OperationTypeReceipt,
		DestinationLocationID: strPtr(locDestino),
		CreatedBy:             "tester",
		Lines:                 []operation.CreateLineInput{{ProductID: prodArroz, QuantityDemanded: dec(0)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Empty(t, db.operations, "nada se persiste si una línea es inválida")
}

func TestWorkflow_Create_ProductoInexistenteDeshaceTodo(t *testing.T) {
	db := newMemDB()
	uc := newWorkflow(db, nil)

	_, err := uc.Create(ctx(), operation.CreateInput{
		OperationType:         entity.OperationTypeReceipt,
		DestinationLocationID: strPtr(locDestino),
		CreatedBy:             "tester",
		Lines: []operation.CreateLineInput{
			{ProductID: prodArroz, QuantityDemanded: dec(1)},
			{ProductID: "prod-fantasma", QuantityDemanded: dec(1)},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, db.operations, "el rollback elimina el documento a medio crear")
	assert.Empty(t, db.lines)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func createDraft(t *testing.T, db *memDB, uc *operation.WorkflowUseCase, opType string, src, dst *string, lines ...operation.CreateLineInput) *entity.Operation {
	t.Helper()
	op, err := uc.Create(ctx(), operation.CreateInput{
		OperationType:         opType,
		SourceLocationID:      src,
		DestinationLocationID: dst,
		CreatedBy:             "tester",
		Lines:                 lines,
	})
	require.NoError(t, err)
	return op
}

func TestWorkflow_Transition_CaminoCompleto(t *testing.T) {
	db := newMemDB()
	uc := newWorkflow(db, nil)
	op := createDraft(t, db, uc, entity.OperationTypeReceipt, nil, strPtr(locDestino),
		operation.CreateLineInput{ProductID: prodArroz, QuantityDemanded: dec(1)})

	for _, status := range []string{entity.StatusWaiting, entity.StatusReady, entity.StatusDone} {
		updated, err := uc.Transition(ctx(), op.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
	// La transición genérica a DONE no mueve stock: eso es exclusivo de Validate
	assert.True(t, db.balance(prodArroz, locDestino).IsZero())
}

func TestWorkflow_Transition_SaltoInvalido(t *testing.T) {
	db := newMemDB()
	uc := newWorkflow(db, nil)
	op := createDraft(t, db, uc, entity.OperationTypeReceipt, nil, strPtr(locDestino),
		operation.CreateLineInput{ProductID: prodArroz, QuantityDemanded: dec(1)})

	_, err := uc.Transition(ctx(), op.ID, entity.StatusDone)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "DRAFT no salta directo a DONE por la tabla genérica")
	assert.Equal(t, entity.StatusDraft, db.operations[op.ID].Status)
}

func TestWorkflow_Transition_TerminalRechaza(t *testing.T) {
	db := newMemDB()
	uc := newWorkflow(db, nil)
	op := createDraft(t, db, uc, entity.OperationTypeReceipt, nil, strPtr(locDestino),
		operation.CreateLineInput{ProductID: prodArroz, QuantityDemanded: dec(1)})

	_, err := uc.Transition(ctx(), op.ID, entity.StatusCanceled)
	require.NoError(t, err)

	_, err = uc.Transition(ctx(), op.ID, entity.StatusWaiting)
	assert.ErrorIs(t, err, domain.ErrAlreadyTerminal)
}

func TestWorkflow_Transition_NoExiste(t *testing.T) {
	db := newMemDB()
	uc := newWorkflow(db, nil)

	_, err := uc.Transition(ctx(), 999, entity.StatusWaiting)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
