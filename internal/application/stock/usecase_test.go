package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/stock"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// fakeTxRunner simula la transacción: clona el store antes del callback y lo
// restaura si este falla, igual que haría un ROLLBACK.
type fakeTxRunner struct {
	s *memStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	stockRepo repository.ProductStockRepository,
	movRepo repository.StockMovementRepository,
	alertRepo repository.LowStockAlertRepository,
	productRepo repository.ProductRepository,
) error) error {
	snapshot := r.s.clone()
	err := fn(&memStockRepo{r.s}, &memMovementRepo{r.s}, &memAlertRepo{r.s}, &memProductRepo{r.s})
	if err != nil {
		*r.s = *snapshot
	}
	return err
}

// fakeNotifier registra las notificaciones recibidas; puede forzarse a fallar.
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

func newUseCase(s *memStore, notifier stock.Notifier) *stock.LedgerUseCase {
	return stock.NewLedgerUseCase(&fakeTxRunner{s}, notifier, nil)
}

func TestLedgerUseCase_Increase_DevuelveSaldoActualizado(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s, nil)

	st, err := uc.Increase(context.Background(), stock.MovementInput{
		ProductID:  prodCafe,
		LocationID: locA,
		Quantity:   dec(10),
		Actor:      "tester",
	})
	require.NoError(t, err)
	assert.True(t, st.Quantity.Equal(dec(10)))
	assert.True(t, s.balance(prodCafe, locA).Equal(dec(10)))
}

func TestLedgerUseCase_Decrease_RollbackAnteFaltante(t *testing.T) {
	s := newMemStore()
	s.seedStock(prodCafe, locA, 5)
	uc := newUseCase(s, nil)

	_, err := uc.Decrease(context.Background(), stock.MovementInput{
		ProductID:  prodCafe,
		LocationID: locA,
		Quantity:   dec(10),
		Actor:      "tester",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, s.balance(prodCafe, locA).Equal(dec(5)), "el rollback restaura el saldo")
	assert.Empty(t, s.movements)
}

func TestLedgerUseCase_Move_EsAtomico(t *testing.T) {
	s := newMemStore()
	s.seedStock(prodCafe, locA, 3)
	uc := newUseCase(s, nil)

	err := uc.Move(context.Background(), stock.MovementInput{
		ProductID:  prodCafe,
		LocationID: locA,
		Quantity:   dec(5),
		Actor:      "tester",
	}, locB)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, s.balance(prodCafe, locA).Equal(dec(3)), "el origen no pierde stock si el traslado falla")
	assert.True(t, s.balance(prodCafe, locB).IsZero())
	assert.Empty(t, s.movements)
}

func TestLedgerUseCase_NotificaAlertasTrasCommit(t *testing.T) {
	s := newMemStore()
	s.seedStock(prodCafe, locA, 10)
	notifier := &fakeNotifier{}
	uc := newUseCase(s, notifier)

	// Baja a 4 (umbral 5): crea alerta y la despacha tras confirmar
	_, err := uc.Decrease(context.Background(), stock.MovementInput{
		ProductID:  prodCafe,
		LocationID: locA,
		Quantity:   dec(6),
		Actor:      "tester",
	})
	require.NoError(t, err)

	require.Len(t, notifier.lowStock, 1)
	assert.Equal(t, prodCafe, notifier.lowStock[0].ProductID)
	assert.Equal(t, locA, notifier.lowStock[0].LocationID)
}

func TestLedgerUseCase_FalloDelNotifierNoPropaga(t *testing.T) {
	s := newMemStore()
	s.seedStock(prodCafe, locA, 10)
	uc := newUseCase(s, &fakeNotifier{fail: true})

	_, err := uc.Decrease(context.Background(), stock.MovementInput{
		ProductID:  prodCafe,
		LocationID: locA,
		Quantity:   dec(6),
		Actor:      "tester",
	})
	assert.NoError(t, err, "la notificación es best-effort: su fallo no afecta la mutación")
	assert.True(t, s.balance(prodCafe, locA).Equal(dec(4)), "el stock queda mutado aunque el correo falle")
}

func TestLedgerUseCase_AdjustAbsolute_FijaSaldo(t *testing.T) {
	s := newMemStore()
	s.seedStock(prodCafe, locA, 12)
	uc := newUseCase(s, nil)

	st, err := uc.AdjustAbsolute(context.Background(), stock.MovementInput{
		ProductID:  prodCafe,
		LocationID: locA,
		Quantity:   dec(8),
		Actor:      "tester",
		Notes:      "conteo",
	})
	require.NoError(t, err)
	assert.True(t, st.Quantity.Equal(dec(8)))
	require.Len(t, s.movements, 1)
	assert.True(t, s.movements[0].Quantity.Equal(dec(4)))
}
