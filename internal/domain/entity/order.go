package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estado de una orden. Las órdenes se cumplen de forma síncrona (los créditos
// se otorgan en la misma llamada), por lo que nacen completadas y no mutan.
const (
	OrderStatusCompleted = "completada"
)

// Order representa la compra de módulos de una empresa.
// Invariante: Details no vacío y TotalAmount = suma de los precios de Details.
type Order struct {
	ID          string
	CompanyID   string
	UserID      string
	TotalAmount decimal.Decimal
	SaleDate    time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderDetail es una línea de la orden. Price es una instantánea del precio
// del catálogo al momento de resolver la orden: cambios posteriores del
// catálogo no la afectan. La línea del módulo básico puede ser sintetizada
// por el motor sin que el comprador la haya pedido.
type OrderDetail struct {
	ID       string
	OrderID  string
	ModuleID string
	Price    decimal.Decimal
}
