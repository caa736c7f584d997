package subscription_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Suscripciones-api/internal/application/subscription"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
	"github.com/jhoicas/Suscripciones-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeSubRepo struct {
	subs      []*entity.Subscription
	credits   []*entity.Credit
	createErr error
	creditErr error

	validIDs    []string
	validErr    error
	activeTypes []string
	typesErr    error

	statusByID map[string]string
}

func (f *fakeSubRepo) Create(_ context.Context, s *entity.Subscription) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.subs = append(f.subs, s)
	return nil
}

func (f *fakeSubRepo) CreateCredit(_ context.Context, c *entity.Credit) error {
	if f.creditErr != nil {
		return f.creditErr
	}
	f.credits = append(f.credits, c)
	return nil
}

func (f *fakeSubRepo) GetByID(_ context.Context, id string) (*entity.Subscription, error) {
	for _, s := range f.subs {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSubRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for _, s := range f.subs {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubRepo) GetValidSubscriptionIDs(_ context.Context, _ string, _ time.Time) ([]string, error) {
	if f.validErr != nil {
		return nil, f.validErr
	}
	return f.validIDs, nil
}

func (f *fakeSubRepo) GetActiveCreditModuleTypes(_ context.Context, _ []string, _ time.Time) ([]string, error) {
	if f.typesErr != nil {
		return nil, f.typesErr
	}
	return f.activeTypes, nil
}

func (f *fakeSubRepo) UpdateStatus(_ context.Context, id, status string) error {
	if f.statusByID == nil {
		f.statusByID = make(map[string]string)
	}
	f.statusByID[id] = status
	for _, s := range f.subs {
		if s.ID == id {
			s.Status = status
		}
	}
	return nil
}

// fakeSubTxRunner ejecuta fn directamente contra el repo fake. Si fn falla,
// descarta lo escrito, emulando el rollback.
type fakeSubTxRunner struct {
	repo *fakeSubRepo
}

func (f *fakeSubTxRunner) RunSubscription(ctx context.Context, fn func(repository.SubscriptionRepository) error) error {
	subsBefore, creditsBefore := len(f.repo.subs), len(f.repo.credits)
	if err := fn(f.repo); err != nil {
		f.repo.subs = f.repo.subs[:subsBefore]
		f.repo.credits = f.repo.credits[:creditsBefore]
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func testLog() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func testOrderWithDetails(n int) (*entity.Order, []*entity.OrderDetail) {
	order := &entity.Order{ID: "order-1", CompanyID: "company-1", UserID: "user-1"}
	details := make([]*entity.OrderDetail, 0, n)
	for i := 0; i < n; i++ {
		details = append(details, &entity.OrderDetail{
			ID:       "detail-" + string(rune('a'+i)),
			OrderID:  order.ID,
			ModuleID: "mod-" + string(rune('a'+i)),
		})
	}
	return order, details
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreateCreditsForOrder
// ──────────────────────────────────────────────────────────────────────────────

// Una orden de tres líneas produce una suscripción y tres créditos, todos con
// la misma ventana de un mes calendario.
func TestLedger_UnaSuscripcionYUnCreditoPorLinea(t *testing.T) {
	repo := &fakeSubRepo{}
	uc := subscription.NewLedgerUseCase(&fakeSubTxRunner{repo: repo}, testLog(), testClock)

	order, details := testOrderWithDetails(3)
	sub, err := uc.CreateCreditsForOrder(context.Background(), order, details, "company-1")
	require.NoError(t, err)
	require.NotNil(t, sub)

	require.Len(t, repo.subs, 1, "exactamente una suscripción por orden")
	require.Len(t, repo.credits, 3, "un crédito por línea de orden")

	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, "company-1", sub.CompanyID)
	assert.Equal(t, order.ID, sub.OrderID, "back-link a la orden de origen")

	assert.Equal(t, testNow, sub.StartDate)
	assert.Equal(t, testNow.AddDate(0, 1, 0), sub.EndDate, "un mes calendario exacto")

	for i, credit := range repo.credits {
		assert.Equal(t, sub.ID, credit.SubscriptionID)
		assert.Equal(t, details[i].ID, credit.OrderDetailID, "back-link 1:1 a la línea")
		assert.Equal(t, details[i].ModuleID, credit.ModuleID)
		assert.True(t, credit.IsActive)
		assert.Equal(t, sub.StartDate, credit.StartDate, "ventana compartida con la suscripción")
		assert.Equal(t, sub.EndDate, credit.EndDate)
	}
}

// La ventana recién creada es vigente en su inicio y su fin, y deja de serlo
// un instante después del fin.
func TestLedger_VentanaVigenteEnLosBordes(t *testing.T) {
	repo := &fakeSubRepo{}
	uc := subscription.NewLedgerUseCase(&fakeSubTxRunner{repo: repo}, testLog(), testClock)

	order, details := testOrderWithDetails(1)
	sub, err := uc.CreateCreditsForOrder(context.Background(), order, details, "company-1")
	require.NoError(t, err)

	assert.True(t, sub.ValidAt(sub.StartDate), "vigente en el inicio")
	assert.True(t, sub.ValidAt(sub.EndDate), "vigente exactamente en el fin")
	assert.False(t, sub.ValidAt(sub.EndDate.Add(time.Second)), "vencida pasado el fin")
	assert.False(t, sub.ValidAt(sub.StartDate.Add(-time.Second)), "no vigente antes del inicio")

	credit := repo.credits[0]
	assert.True(t, credit.ValidAt(credit.EndDate))
	assert.False(t, credit.ValidAt(credit.EndDate.Add(time.Second)))
}

// Detalles vacíos: inválido, nada se escribe.
func TestLedger_SinDetalles_Invalido(t *testing.T) {
	repo := &fakeSubRepo{}
	uc := subscription.NewLedgerUseCase(&fakeSubTxRunner{repo: repo}, testLog(), testClock)

	_, err := uc.CreateCreditsForOrder(context.Background(), &entity.Order{ID: "order-1"}, nil, "company-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.subs)
	assert.Empty(t, repo.credits)
}

// Orden nil: inválido.
func TestLedger_OrdenNil_Invalido(t *testing.T) {
	repo := &fakeSubRepo{}
	uc := subscription.NewLedgerUseCase(&fakeSubTxRunner{repo: repo}, testLog(), testClock)

	_, details := testOrderWithDetails(1)
	_, err := uc.CreateCreditsForOrder(context.Background(), nil, details, "company-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Fallo al insertar un crédito: la transacción se descarta completa, nunca
// queda una suscripción sin su juego de créditos.
func TestLedger_FalloEnCredito_DescartaTodo(t *testing.T) {
	repo := &fakeSubRepo{creditErr: errors.New("unique violation")}
	uc := subscription.NewLedgerUseCase(&fakeSubTxRunner{repo: repo}, testLog(), testClock)

	order, details := testOrderWithDetails(2)
	_, err := uc.CreateCreditsForOrder(context.Background(), order, details, "company-1")
	require.Error(t, err)
	assert.Empty(t, repo.subs, "rollback: sin suscripción huérfana")
	assert.Empty(t, repo.credits)
}
