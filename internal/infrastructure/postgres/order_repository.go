package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
// Cabecera y líneas se insertan bajo el TxRunner: una orden nunca es
// observable sin sus líneas.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera de la orden.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO orders (id, company_id, user_id, total_amount, sale_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.CompanyID, order.UserID, order.TotalAmount,
		order.SaleDate, order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de la orden.
func (r *OrderRepo) CreateDetail(ctx context.Context, detail *entity.OrderDetail) error {
	if detail.ID == "" {
		detail.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_details (id, order_id, module_id, price)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query,
		detail.ID, detail.OrderID, detail.ModuleID, detail.Price,
	)
	if err != nil {
		return fmt.Errorf("insert order detail: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `
		SELECT id, company_id, user_id, total_amount, sale_date, status, created_at, updated_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CompanyID, &o.UserID, &o.TotalAmount,
		&o.SaleDate, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// GetDetailsByOrderID obtiene todas las líneas de una orden.
func (r *OrderRepo) GetDetailsByOrderID(ctx context.Context, orderID string) ([]*entity.OrderDetail, error) {
	query := `
		SELECT id, order_id, module_id, price
		FROM order_details WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order details: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderDetail
	for rows.Next() {
		var d entity.OrderDetail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ModuleID, &d.Price); err != nil {
			return nil, fmt.Errorf("scan order detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ListByCompany devuelve las órdenes de una empresa con paginación.
func (r *OrderRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT id, company_id, user_id, total_amount, sale_date, status, created_at, updated_at
		FROM orders WHERE company_id = $1 ORDER BY sale_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.UserID, &o.TotalAmount, &o.SaleDate, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
