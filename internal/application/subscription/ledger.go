package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
	"github.com/jhoicas/Suscripciones-api/pkg/logger"
)

// LedgerUseCase convierte una orden cumplida en el libro de créditos: una
// suscripción y un crédito por línea de orden, todos con la misma ventana de
// vigencia de un mes calendario.
type LedgerUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	now      Clock
}

// NewLedgerUseCase construye el caso de uso. now nil = time.Now.
func NewLedgerUseCase(txRunner TxRunner, log *logger.Logger, now Clock) *LedgerUseCase {
	if now == nil {
		now = time.Now
	}
	return &LedgerUseCase{txRunner: txRunner, log: log, now: now}
}

// CreateCreditsForOrder crea exactamente una suscripción activa y un crédito
// por cada línea de la orden, en una sola transacción. La ventana
// start=now(UTC), end=start+1 mes calendario es compartida tal cual por la
// suscripción y todos sus créditos: no hay personalización por módulo.
// Con detalles vacíos falla con domain.ErrInvalidInput sin escribir nada.
func (uc *LedgerUseCase) CreateCreditsForOrder(ctx context.Context, order *entity.Order, details []*entity.OrderDetail, companyID string) (*entity.Subscription, error) {
	if order == nil || len(details) == 0 {
		return nil, domain.ErrInvalidInput
	}

	start := uc.now().UTC()
	end := start.AddDate(0, 1, 0)

	sub := &entity.Subscription{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		OrderID:   order.ID,
		Status:    entity.SubscriptionStatusActive,
		StartDate: start,
		EndDate:   end,
		CreatedAt: start,
		UpdatedAt: start,
	}

	credits := make([]*entity.Credit, 0, len(details))
	for _, d := range details {
		credits = append(credits, &entity.Credit{
			ID:             uuid.New().String(),
			SubscriptionID: sub.ID,
			ModuleID:       d.ModuleID,
			OrderDetailID:  d.ID, // back-link 1:1 único a la línea de orden
			IsActive:       true,
			StartDate:      start,
			EndDate:        end,
			CreatedAt:      start,
		})
	}

	err := uc.txRunner.RunSubscription(ctx, func(subRepo repository.SubscriptionRepository) error {
		if err := subRepo.Create(ctx, sub); err != nil {
			return err
		}
		for _, credit := range credits {
			if err := subRepo.CreateCredit(ctx, credit); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("subscription_id", sub.ID).
		Str("order_id", order.ID).
		Str("company_id", companyID).
		Int("credits", len(credits)).
		Time("end_date", end).
		Msg("suscripción creada con sus créditos")

	return sub, nil
}
