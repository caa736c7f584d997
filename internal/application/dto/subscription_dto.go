package dto

import "time"

// SubscriptionResponse suscripción en respuestas.
type SubscriptionResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	OrderID   string    `json:"order_id,omitempty"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// SubscriptionListResponse listado paginado de suscripciones.
type SubscriptionListResponse struct {
	Items []SubscriptionResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// ValidSubscriptionsResponse ids de suscripciones vigentes ahora.
type ValidSubscriptionsResponse struct {
	SubscriptionIDs []string `json:"subscription_ids"`
}

// ActiveModuleTypesResponse tipos de módulo habilitados ahora para la empresa,
// deduplicados por tipo. Vacío = sin derechos adicionales (resultado exitoso).
type ActiveModuleTypesResponse struct {
	ModuleTypes []string `json:"module_types"`
}
