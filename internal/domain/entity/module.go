package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de módulo SaaS vendibles (enumeración cerrada; deben coincidir con el
// CHECK de la tabla modules).
const (
	ModuleTypeBasic      = "basic"
	ModuleTypeAccounting = "accounting"
	ModuleTypeHr         = "hr"
	ModuleTypeEcommerce  = "ecommerce"
	ModuleTypePos        = "pos"
	ModuleTypeContracts  = "contracts"
)

// Module representa un módulo del catálogo. Es una entidad de solo lectura
// para el motor de órdenes: las líneas de orden y los créditos la referencian,
// nunca la poseen.
type Module struct {
	ID          string
	Type        string // ver constantes ModuleType*
	Name        string
	Price       decimal.Decimal
	SubFeatures []SubFeature
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SubFeature es una característica incluida en un módulo (opcional).
type SubFeature struct {
	ID       string
	ModuleID string
	Name     string
}

// IsBasic informa si el módulo es el módulo básico obligatorio.
func (m *Module) IsBasic() bool {
	return m.Type == ModuleTypeBasic
}
