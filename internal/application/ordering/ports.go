package ordering

import (
	"context"
	"time"

	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
)

// Clock entrega el instante actual. Inyectado para pruebas deterministas.
type Clock func() time.Time

// TxRunner ejecuta fn con un repositorio de órdenes atado a una transacción:
// cabecera y líneas se confirman o descartan como unidad.
// Lo implementa *postgres.TxRunner.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}

// MembershipChecker verifica la pertenencia del usuario a la empresa.
// Lo implementa el repositorio de usuarios; la interfaz evita acoplar el
// cumplimiento de órdenes al resto del puerto de usuarios.
type MembershipChecker interface {
	IsMember(ctx context.Context, userID, companyID string) (bool, error)
}

// CreditLedger es el contrato mínimo hacia el libro de suscripciones.
// Lo implementa *subscription.LedgerUseCase.
type CreditLedger interface {
	CreateCreditsForOrder(ctx context.Context, order *entity.Order, details []*entity.OrderDetail, companyID string) (*entity.Subscription, error)
}

// ProvisioningNotifier es el gancho externo de aprovisionamiento/migración.
// Se dispara tras una orden exitosa; su manejo de fallos no es de este núcleo:
// un error se registra y jamás revierte la orden.
type ProvisioningNotifier interface {
	NotifyModulesGranted(ctx context.Context, companyID string, moduleTypes []string) error
}

// Metrics contadores de negocio del cumplimiento de órdenes.
// Lo implementa *metrics.OrderMetrics; en pruebas se usa un no-op.
type Metrics interface {
	IncOrderCreated()
	IncBaselineSynthesized()
	AddCreditsGranted(n int)
}
