package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
)

// SubscriptionRepository define el puerto de persistencia para Subscription y
// Credit. Suscripción y créditos se insertan en la misma transacción: una fila
// de suscripción no debe ser observable sin su juego completo de créditos.
// Las consultas de vigencia reciben el instante como parámetro en vez de usar
// now() en SQL, para mantener el camino de lectura determinista en pruebas.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	CreateCredit(ctx context.Context, credit *entity.Credit) error
	GetByID(ctx context.Context, id string) (*entity.Subscription, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Subscription, error)
	// GetValidSubscriptionIDs devuelve los ids de suscripciones activas cuya
	// ventana contiene el instante dado. Sin garantía de orden; sin duplicados.
	GetValidSubscriptionIDs(ctx context.Context, companyID string, now time.Time) ([]string, error)
	// GetActiveCreditModuleTypes devuelve el tipo de módulo de cada crédito
	// vigente (is_active y ventana contiene now) bajo las suscripciones dadas.
	// Puede contener tipos repetidos; la deduplicación es del resolutor.
	GetActiveCreditModuleTypes(ctx context.Context, subscriptionIDs []string, now time.Time) ([]string, error)
	// UpdateStatus cambia el estado de la suscripción (cancelación externa).
	UpdateStatus(ctx context.Context, id, status string) error
}
