package repository

import (
	"context"

	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// Las escrituras de cabecera y detalles deben ejecutarse dentro de la misma
// transacción (ver TxRunner): nunca debe observarse una orden sin sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateDetail(ctx context.Context, detail *entity.OrderDetail) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetDetailsByOrderID(ctx context.Context, orderID string) ([]*entity.OrderDetail, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Order, error)
}
