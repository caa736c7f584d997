package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Suscripciones-api/internal/application/ordering"
	"github.com/jhoicas/Suscripciones-api/internal/application/subscription"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
)

var (
	_ ordering.TxRunner     = (*TxRunner)(nil)
	_ subscription.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Cada Run*
// es una unidad atómica propia: la orden con sus líneas por un lado, la
// suscripción con sus créditos por el otro.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunOrder inicia una transacción, ejecuta fn con el repo de órdenes atado a
// la tx y hace Commit o Rollback. Nunca queda visible una orden sin líneas.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSubscription inicia una transacción con el repo de suscripciones atado a
// la tx. Una fila de suscripción jamás es observable sin sus créditos.
func (r *TxRunner) RunSubscription(ctx context.Context, fn func(subRepo repository.SubscriptionRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSubscriptionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
