package ordering_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Suscripciones-api/internal/application/dto"
	"github.com/jhoicas/Suscripciones-api/internal/application/ordering"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
	"github.com/jhoicas/Suscripciones-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders  []*entity.Order
	details []*entity.OrderDetail
}

func (f *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeOrderRepo) CreateDetail(_ context.Context, d *entity.OrderDetail) error {
	f.details = append(f.details, d)
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) GetDetailsByOrderID(_ context.Context, orderID string) ([]*entity.OrderDetail, error) {
	var out []*entity.OrderDetail
	for _, d := range f.details {
		if d.OrderID == orderID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.orders {
		if o.CompanyID == companyID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeTxRunner struct {
	repo *fakeOrderRepo
}

func (f *fakeTxRunner) RunOrder(ctx context.Context, fn func(repository.OrderRepository) error) error {
	return fn(f.repo)
}

type fakeModuleRepo struct {
	byID          map[string]*entity.Module
	basic         *entity.Module
	byIDsErr      error
	byTypeErr     error
	byTypeInvoked bool
}

func (f *fakeModuleRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Module, error) {
	if f.byIDsErr != nil {
		return nil, f.byIDsErr
	}
	out := make(map[string]*entity.Module)
	for _, id := range ids {
		if m, ok := f.byID[id]; ok {
			out[id] = m
		}
	}
	return out, nil
}

func (f *fakeModuleRepo) GetByType(_ context.Context, moduleType string) (*entity.Module, error) {
	f.byTypeInvoked = true
	if f.byTypeErr != nil {
		return nil, f.byTypeErr
	}
	if moduleType == entity.ModuleTypeBasic {
		return f.basic, nil
	}
	return nil, nil
}

func (f *fakeModuleRepo) List(_ context.Context) ([]*entity.Module, error) { return nil, nil }

func (f *fakeModuleRepo) Create(_ context.Context, _ *entity.Module) error { return nil }

type fakeMembers struct {
	ok  bool
	err error
}

func (f *fakeMembers) IsMember(_ context.Context, _, _ string) (bool, error) {
	return f.ok, f.err
}

type fakeLedger struct {
	order   *entity.Order
	details []*entity.OrderDetail
	sub     *entity.Subscription
	err     error
}

func (f *fakeLedger) CreateCreditsForOrder(_ context.Context, order *entity.Order, details []*entity.OrderDetail, companyID string) (*entity.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.order = order
	f.details = details
	if f.sub == nil {
		f.sub = &entity.Subscription{ID: "sub-1", CompanyID: companyID, OrderID: order.ID}
	}
	return f.sub, nil
}

type fakeNotifier struct {
	companyID   string
	moduleTypes []string
	err         error
	invoked     bool
}

func (f *fakeNotifier) NotifyModulesGranted(_ context.Context, companyID string, moduleTypes []string) error {
	f.invoked = true
	f.companyID = companyID
	f.moduleTypes = moduleTypes
	return f.err
}

type fakeMetrics struct {
	orders   int
	baseline int
	credits  int
}

func (f *fakeMetrics) IncOrderCreated()        { f.orders++ }
func (f *fakeMetrics) IncBaselineSynthesized() { f.baseline++ }
func (f *fakeMetrics) AddCreditsGranted(n int) { f.credits += n }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func testLog() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func basicModule() *entity.Module {
	return &entity.Module{
		ID:    "mod-basic",
		Type:  entity.ModuleTypeBasic,
		Name:  "Módulo Básico",
		Price: decimal.NewFromInt(5),
	}
}

func ecommerceModule() *entity.Module {
	return &entity.Module{
		ID:    "mod-ecom",
		Type:  entity.ModuleTypeEcommerce,
		Name:  "Comercio Electrónico",
		Price: decimal.NewFromInt(20),
	}
}

type testEnv struct {
	uc         *ordering.CreateOrderUseCase
	orderRepo  *fakeOrderRepo
	moduleRepo *fakeModuleRepo
	ledger     *fakeLedger
	notifier   *fakeNotifier
	metrics    *fakeMetrics
}

func newTestEnv(moduleRepo *fakeModuleRepo, members *fakeMembers) *testEnv {
	orderRepo := &fakeOrderRepo{}
	ledger := &fakeLedger{}
	notifier := &fakeNotifier{}
	metrics := &fakeMetrics{}
	uc := ordering.NewCreateOrderUseCase(
		&fakeTxRunner{repo: orderRepo}, moduleRepo, orderRepo, members,
		ledger, notifier, metrics, testLog(), testClock,
	)
	return &testEnv{
		uc:         uc,
		orderRepo:  orderRepo,
		moduleRepo: moduleRepo,
		ledger:     ledger,
		notifier:   notifier,
		metrics:    metrics,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreateOrder
// ──────────────────────────────────────────────────────────────────────────────

// Pidiendo solo ecommerce (20), el motor agrega el básico (5): dos líneas y
// total 25.
func TestCreateOrder_AgregaModuloBasicoSiFalta(t *testing.T) {
	moduleRepo := &fakeModuleRepo{
		byID:  map[string]*entity.Module{"mod-ecom": ecommerceModule()},
		basic: basicModule(),
	}
	env := newTestEnv(moduleRepo, &fakeMembers{ok: true})

	out, err := env.uc.CreateOrder(context.Background(), "user-1", "company-1", dto.CreateOrderRequest{
		ModuleIDs: []string{"mod-ecom"},
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.True(t, decimal.NewFromInt(25).Equal(out.TotalAmount),
		"total = ecommerce (20) + básico agregado (5)")
	require.Len(t, out.Details, 2)
	assert.Equal(t, "mod-ecom", out.Details[0].ModuleID, "la línea pedida va primero")
	assert.Equal(t, "mod-basic", out.Details[1].ModuleID, "el básico se anexa al final")
	assert.Equal(t, entity.OrderStatusCompleted, out.Status)

	// La orden y sus líneas se persistieron como unidad.
	require.Len(t, env.orderRepo.orders, 1)
	require.Len(t, env.orderRepo.details, 2)
	assert.Equal(t, env.orderRepo.orders[0].ID, env.orderRepo.details[0].OrderID)

	// Precio instantánea en cada línea.
	assert.True(t, decimal.NewFromInt(20).Equal(env.orderRepo.details[0].Price))
	assert.True(t, decimal.NewFromInt(5).Equal(env.orderRepo.details[1].Price))

	assert.Equal(t, 1, env.metrics.orders)
	assert.Equal(t, 1, env.metrics.baseline)
	assert.Equal(t, 2, env.metrics.credits)
}

// Si el comprador ya pidió el básico, no se consulta el catálogo por tipo ni se
// duplica la línea.
func TestCreateOrder_BasicoPedidoNoSeDuplica(t *testing.T) {
	moduleRepo := &fakeModuleRepo{
		byID: map[string]*entity.Module{
			"mod-basic": basicModule(),
			"mod-ecom":  ecommerceModule(),
		},
		basic: basicModule(),
	}
	env := newTestEnv(moduleRepo, &fakeMembers{ok: true})

	out, err := env.uc.CreateOrder(context.Background(), "user-1", "company-1", dto.CreateOrderRequest{
		ModuleIDs: []string{"mod-basic", "mod-ecom"},
	})
	require.NoError(t, err)

	assert.False(t, moduleRepo.byTypeInvoked, "con básico en la orden no se busca por tipo")
	require.Len(t, out.Details, 2)
	assert.Equal(t, 0, env.metrics.baseline)
}

// Ids repetidos en la petición colapsan a una sola línea.
func TestCreateOrder_IdsRepetidosColapsan(t *testing.T) {
	moduleRepo := &fakeModuleRepo{
		byID:  map[string]*entity.Module{"mod-ecom": ecommerceModule()},
		basic: basicModule(),
	}
	env := newTestEnv(moduleRepo, &fakeMembers{ok: true})

	out, err := env.uc.CreateOrder(context.Background(), "user-1", "company-1", dto.CreateOrderRequest{
		ModuleIDs: []string{"mod-ecom", "mod-ecom", "mod-ecom"},
	})
	require.NoError(t, err)
	require.Len(t, out.Details, 2, "ecommerce una vez + básico")
	assert.True(t, decimal.NewFromInt(25).Equal(out.TotalAmount))
}

// Ids inexistentes se descartan en silencio; los resolubles siguen adelante.
func TestCreateOrder_IdsInexistentesSeDescartan(t *testing.T) {
	moduleRepo := &fakeModuleRepo{
		byID:  map[string]*entity.Module{"mod-ecom": ecommerceModule()},
		basic: basicModule(),
	}
	env := newTestEnv(moduleRepo, &fakeMembers{ok: true})

	out, err := env.uc.CreateOrder(context.Background(), "user-1", "company-1", dto.CreateOrderRequest{
		ModuleIDs: []string{"no-existe", "mod-ecom"},
	})
	require.NoError(t, err)
	require.Len(t, out.Details, 2)
	assert.Equal(t, "mod-ecom", out.Details[0].ModuleID)
}

// Ningún id resoluble: la orden falla sin escribir nada.
func TestCreateOrder_SinModulosResolubles_Falla(t *testing.T) {
	moduleRepo := &fakeModuleRepo{
		byID:  map[string]*entity.Module{},
		basic: basicModule(),
	}
	env := newTestEnv(moduleRepo, &fakeMembers{ok: true})

	_, err := env.uc.CreateOrder(context.Background(), "user-1", "company-1", dto.CreateOrderRequest{
		ModuleIDs: []string{"no-existe"},
	})
	assert.ErrorIs(t, err, domain.ErrModuleNotExists)
	assert.Empty(t, env.orderRepo.orders, "no debe persistirse ninguna orden")
	assert.Empty(t, env.orderRepo.details)
	assert.False(t, env.notifier.invoked)
	assert.Equal(t, 0, env.metrics.orders)
}

// Fallo del catálogo al resolver: se traduce a ErrModuleNotExists.
func TestCreateOrder_FalloDeCatalogo_Falla(t *testing.T) {
	moduleRepo := &fakeModuleRepo{byIDsErr: errors.New("db caída")}
	env := newTestEnv(moduleRepo, &fakeMembers{ok: true})

	_, err := env.uc.CreateOrder(context.Background(), "user-1", "company-1", dto.CreateOrderRequest{
		ModuleIDs: []string{"mod-ecom"},
	})
	assert.ErrorIs(t, err, domain.ErrModuleNotExists)
	assert.Empty(t, env.orderRepo.orders)
}

// Catálogo sin módulo básico: imposible garantizar el piso, la orden falla.
func TestCreateOrder_SinBasicoEnCatalogo_Falla(t *testing.T) {
	moduleRepo := &fakeModuleRepo{
		byID:  map[string]*entity.Module{"mod-ecom": ecommerceModule()},
		basic: nil,
	}
	env := newTestEnv(moduleRepo, &fakeMembers{ok: true})

	_, err := env.uc.CreateOrder(context.Background(), "user-1", "company-1", dto.CreateOrderRequest{
		ModuleIDs: []string{"mod-ecom"},
	})
	assert.ErrorIs(t, err, domain.ErrModuleNotExists)
	assert.Empty(t, env.orderRepo.orders)
}

// Usuario que no pertenece a la empresa: ErrForbidden antes de tocar el catálogo.
func TestCreateOrder_UsuarioNoMiembro_Forbidden(t *testing.T) {
	moduleRepo := &fakeModuleRepo{
		byID:  map[string]*entity.Module{"mod-ecom": ecommerceModule()},
		basic: basicModule(),
	}
	env := newTestEnv(moduleRepo, &fakeMembers{ok: false})

	_, err := env.uc.CreateOrder(context.Background(), "user-ajeno", "company-1", dto.CreateOrderRequest{
		ModuleIDs: []string{"mod-ecom"},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, env.orderRepo.orders)
}

// Fallo al verificar pertenencia se propaga tal cual, no colapsa a Forbidden.
func TestCreateOrder_FalloDeMembresia_SePropaga(t *testing.T) {
	infraErr := errors.New("timeout")
	moduleRepo := &fakeModuleRepo{
		byID:  map[string]*entity.Module{"mod-ecom": ecommerceModule()},
		basic: basicModule(),
	}
	env := newTestEnv(moduleRepo, &fakeMembers{err: infraErr})

	_, err := env.uc.CreateOrder(context.Background(), "user-1", "company-1", dto.CreateOrderRequest{
		ModuleIDs: []string{"mod-ecom"},
	})
	assert.ErrorIs(t, err, infraErr)
}

// Petición sin módulos: inválida.
func TestCreateOrder_SinModuleIDs_Invalida(t *testing.T) {
	env := newTestEnv(&fakeModuleRepo{}, &fakeMembers{ok: true})

	_, err := env.uc.CreateOrder(context.Background(), "user-1", "company-1", dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La orden cumplida se entrega al libro de suscripciones y al notificador con
// los tipos deduplicados.
func TestCreateOrder_NotificaTiposOtorgados(t *testing.T) {
	moduleRepo := &fakeModuleRepo{
		byID:  map[string]*entity.Module{"mod-ecom": ecommerceModule()},
		basic: basicModule(),
	}
	env := newTestEnv(moduleRepo, &fakeMembers{ok: true})

	out, err := env.uc.CreateOrder(context.Background(), "user-1", "company-1", dto.CreateOrderRequest{
		ModuleIDs: []string{"mod-ecom"},
	})
	require.NoError(t, err)

	require.NotNil(t, env.ledger.order, "la orden debe llegar al libro")
	assert.Len(t, env.ledger.details, 2)
	assert.Equal(t, env.ledger.sub.ID, out.SubscriptionID)

	assert.True(t, env.notifier.invoked)
	assert.Equal(t, "company-1", env.notifier.companyID)
	assert.Equal(t, []string{entity.ModuleTypeEcommerce, entity.ModuleTypeBasic}, env.notifier.moduleTypes)
}

// Un fallo del notificador jamás revierte la orden.
func TestCreateOrder_FalloDeNotificadorNoRevierte(t *testing.T) {
	moduleRepo := &fakeModuleRepo{
		byID:  map[string]*entity.Module{"mod-ecom": ecommerceModule()},
		basic: basicModule(),
	}
	env := newTestEnv(moduleRepo, &fakeMembers{ok: true})
	env.notifier.err = errors.New("broker caído")

	out, err := env.uc.CreateOrder(context.Background(), "user-1", "company-1", dto.CreateOrderRequest{
		ModuleIDs: []string{"mod-ecom"},
	})
	require.NoError(t, err, "la orden se completa aunque la notificación falle")
	assert.NotNil(t, out)
	assert.Len(t, env.orderRepo.orders, 1)
}
