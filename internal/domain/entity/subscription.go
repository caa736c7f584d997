package entity

import "time"

// Estados de una suscripción. Una suscripción activa cuya ventana ya venció
// queda inerte solo por la comparación de fechas en lectura: no existe ninguna
// transición almacenada al expirar.
const (
	SubscriptionStatusActive   = "activa"
	SubscriptionStatusInactive = "inactiva"
)

// Subscription agrupa los créditos otorgados por una orden. Se crea
// exactamente una por orden; EndDate = StartDate + 1 mes calendario.
type Subscription struct {
	ID        string
	CompanyID string
	OrderID   string // back-link a la orden que la originó
	Status    string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidAt informa si la suscripción está vigente en el instante dado.
// La vigencia nunca se almacena derivada: siempre se evalúa al consultar.
func (s *Subscription) ValidAt(now time.Time) bool {
	return s.Status == SubscriptionStatusActive &&
		!now.Before(s.StartDate) && !now.After(s.EndDate)
}

// Credit es un derecho de uso de un módulo, acotado en el tiempo, derivado de
// una línea de orden. OrderDetailID es un back-link 1:1 único a la línea que
// lo originó; el enlace es siempre por identificador, nunca posicional.
type Credit struct {
	ID             string
	SubscriptionID string
	ModuleID       string
	OrderDetailID  string
	IsActive       bool
	StartDate      time.Time
	EndDate        time.Time
	CreatedAt      time.Time
}

// ValidAt informa si el crédito está vigente en el instante dado.
func (c *Credit) ValidAt(now time.Time) bool {
	return c.IsActive && !now.Before(c.StartDate) && !now.After(c.EndDate)
}
