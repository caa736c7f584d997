package metrics

import (
	"github.com/jhoicas/Suscripciones-api/internal/application/ordering"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	_ ordering.Metrics = (*OrderMetrics)(nil)
	_ ordering.Metrics = (*NopMetrics)(nil)
)

// OrderMetrics contadores Prometheus del cumplimiento de órdenes.
type OrderMetrics struct {
	ordersCreated       prometheus.Counter
	baselineSynthesized prometheus.Counter
	creditsGranted      prometheus.Counter
}

// NewOrderMetrics registra los contadores en el registry dado.
func NewOrderMetrics(registry *prometheus.Registry) *OrderMetrics {
	return &OrderMetrics{
		ordersCreated: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total de órdenes de compra completadas",
		}),
		baselineSynthesized: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "orders_baseline_synthesized_total",
			Help: "Total de órdenes donde el módulo básico se agregó automáticamente",
		}),
		creditsGranted: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "credits_granted_total",
			Help: "Total de créditos de módulo otorgados",
		}),
	}
}

func (m *OrderMetrics) IncOrderCreated()        { m.ordersCreated.Inc() }
func (m *OrderMetrics) IncBaselineSynthesized() { m.baselineSynthesized.Inc() }
func (m *OrderMetrics) AddCreditsGranted(n int) { m.creditsGranted.Add(float64(n)) }

// NopMetrics descarta todo. Para pruebas y herramientas de línea de comandos.
type NopMetrics struct{}

func (NopMetrics) IncOrderCreated()        {}
func (NopMetrics) IncBaselineSynthesized() {}
func (NopMetrics) AddCreditsGranted(int)   {}
