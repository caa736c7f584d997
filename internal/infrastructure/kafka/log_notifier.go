package kafka

import (
	"context"

	"github.com/jhoicas/Suscripciones-api/internal/application/ordering"
	"github.com/jhoicas/Suscripciones-api/pkg/logger"
)

var _ ordering.ProvisioningNotifier = (*LogNotifier)(nil)

// LogNotifier es el notificador de respaldo cuando no hay brokers
// configurados (entornos locales / CI). Solo deja constancia en logs.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador de solo-log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// NotifyModulesGranted registra el evento sin publicarlo.
func (n *LogNotifier) NotifyModulesGranted(ctx context.Context, companyID string, moduleTypes []string) error {
	n.log.Info().
		Str("company_id", companyID).
		Strs("module_types", moduleTypes).
		Msg("módulos otorgados (notificación solo-log, sin brokers Kafka)")
	return nil
}
