package subscription

import (
	"context"
	"time"

	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
)

// Clock entrega el instante actual. Se inyecta en vez de leer el reloj del
// sistema para que ventanas y vigencias sean deterministas en pruebas.
type Clock func() time.Time

// TxRunner ejecuta fn con un repositorio de suscripciones atado a una
// transacción: suscripción y créditos se confirman o descartan como unidad.
// Lo implementa *postgres.TxRunner.
type TxRunner interface {
	RunSubscription(ctx context.Context, fn func(subRepo repository.SubscriptionRepository) error) error
}
