package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo implementación de SubscriptionRepository (usable con pool o tx).
// Las consultas de vigencia reciben el instante como parámetro ($n) en vez de
// usar now() en SQL: la vigencia se evalúa al leer, nunca se almacena.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

// Create persiste la suscripción.
func (r *SubscriptionRepo) Create(ctx context.Context, sub *entity.Subscription) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	query := `
		INSERT INTO subscriptions (id, company_id, order_id, status, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		sub.ID, sub.CompanyID, nullIfEmpty(sub.OrderID), sub.Status,
		sub.StartDate, sub.EndDate, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// CreateCredit persiste un crédito. El back-link order_detail_id tiene
// constraint UNIQUE: a lo sumo un crédito por línea de orden.
func (r *SubscriptionRepo) CreateCredit(ctx context.Context, credit *entity.Credit) error {
	if credit.ID == "" {
		credit.ID = uuid.New().String()
	}
	query := `
		INSERT INTO credits (id, subscription_id, module_id, order_detail_id, is_active, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		credit.ID, credit.SubscriptionID, credit.ModuleID, nullIfEmpty(credit.OrderDetailID),
		credit.IsActive, credit.StartDate, credit.EndDate, credit.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("credit already exists for order detail: %w", err)
		}
		return fmt.Errorf("insert credit: %w", err)
	}
	return nil
}

// GetByID obtiene una suscripción por ID.
func (r *SubscriptionRepo) GetByID(ctx context.Context, id string) (*entity.Subscription, error) {
	query := `
		SELECT id, company_id, COALESCE(order_id, ''), status, start_date, end_date, created_at, updated_at
		FROM subscriptions WHERE id = $1`
	var s entity.Subscription
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.CompanyID, &s.OrderID, &s.Status,
		&s.StartDate, &s.EndDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &s, nil
}

// ListByCompany devuelve las suscripciones de una empresa con paginación.
func (r *SubscriptionRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Subscription, error) {
	query := `
		SELECT id, company_id, COALESCE(order_id, ''), status, start_date, end_date, created_at, updated_at
		FROM subscriptions WHERE company_id = $1 ORDER BY start_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Subscription
	for rows.Next() {
		var s entity.Subscription
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.OrderID, &s.Status, &s.StartDate, &s.EndDate, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// GetValidSubscriptionIDs devuelve los ids de suscripciones activas cuya
// ventana contiene el instante dado. Resultado sin duplicados (PK).
func (r *SubscriptionRepo) GetValidSubscriptionIDs(ctx context.Context, companyID string, now time.Time) ([]string, error) {
	query := `
		SELECT id FROM subscriptions
		 WHERE company_id = $1
		   AND status     = $2
		   AND start_date <= $3
		   AND end_date   >= $3`
	rows, err := r.q.Query(ctx, query, companyID, entity.SubscriptionStatusActive, now)
	if err != nil {
		return nil, fmt.Errorf("valid subscriptions: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan subscription id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetActiveCreditModuleTypes devuelve el tipo de módulo de cada crédito
// vigente bajo las suscripciones dadas. Puede repetir tipos: la
// deduplicación por tipo es del resolutor de derechos, no del SQL.
func (r *SubscriptionRepo) GetActiveCreditModuleTypes(ctx context.Context, subscriptionIDs []string, now time.Time) ([]string, error) {
	if len(subscriptionIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT m.type
		  FROM credits c
		  JOIN modules m ON m.id = c.module_id
		 WHERE c.subscription_id = ANY($1)
		   AND c.is_active  = true
		   AND c.start_date <= $2
		   AND c.end_date   >= $2`
	rows, err := r.q.Query(ctx, query, subscriptionIDs, now)
	if err != nil {
		return nil, fmt.Errorf("active credit types: %w", err)
	}
	defer rows.Close()
	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan module type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// UpdateStatus cambia el estado de la suscripción (cancelación externa).
func (r *SubscriptionRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE subscriptions SET status = $2, updated_at = $3 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("update subscription status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update subscription status: no rows")
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
