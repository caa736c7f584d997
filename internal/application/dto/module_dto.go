package dto

import "github.com/shopspring/decimal"

// ModuleResponse módulo del catálogo en respuestas.
type ModuleResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	SubFeatures []string        `json:"sub_features,omitempty"`
}

// ModuleListResponse catálogo completo.
type ModuleListResponse struct {
	Items []ModuleResponse `json:"items"`
}
