package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest lista de deseos del comprador: ids de módulos del catálogo.
// El módulo básico no necesita pedirse; si falta, el motor lo agrega.
type CreateOrderRequest struct {
	ModuleIDs []string `json:"module_ids" validate:"required,min=1"`
}

// OrderDetailResponse línea de orden en respuestas.
type OrderDetailResponse struct {
	ID         string          `json:"id"`
	ModuleID   string          `json:"module_id"`
	ModuleName string          `json:"module_name,omitempty"`
	ModuleType string          `json:"module_type,omitempty"`
	Price      decimal.Decimal `json:"price"`
}

// OrderResponse orden persistida con sus líneas y la suscripción resultante.
type OrderResponse struct {
	ID             string                `json:"id"`
	CompanyID      string                `json:"company_id"`
	UserID         string                `json:"user_id"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	SaleDate       time.Time             `json:"sale_date"`
	Status         string                `json:"status"`
	SubscriptionID string                `json:"subscription_id,omitempty"`
	Details        []OrderDetailResponse `json:"details"`
}

// OrderListResponse listado paginado de órdenes de la empresa.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
