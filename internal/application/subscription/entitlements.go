package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
)

// EntitlementsUseCase es el camino de lectura puro: responde qué tipos de
// módulo puede usar una empresa en este momento. No escribe nada y puede
// ejecutarse con concurrencia ilimitada frente a los escritores.
type EntitlementsUseCase struct {
	subRepo repository.SubscriptionRepository
	now     Clock
}

// NewEntitlementsUseCase construye el resolutor. now nil = time.Now.
func NewEntitlementsUseCase(subRepo repository.SubscriptionRepository, now Clock) *EntitlementsUseCase {
	if now == nil {
		now = time.Now
	}
	return &EntitlementsUseCase{subRepo: subRepo, now: now}
}

// GetValidSubscriptions devuelve los ids de suscripciones vigentes de la
// empresa: estado activo y ventana que contiene el instante actual.
func (uc *EntitlementsUseCase) GetValidSubscriptions(ctx context.Context, companyID string) ([]string, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	ids, err := uc.subRepo.GetValidSubscriptionIDs(ctx, companyID, uc.now())
	if err != nil {
		return nil, fmt.Errorf("resolver suscripciones vigentes: %w", err)
	}
	return ids, nil
}

// GetActiveModuleTypes devuelve los tipos de módulo otorgados por créditos
// vigentes bajo suscripciones vigentes, deduplicados por tipo: un tipo
// alcanzable por dos suscripciones solapadas aparece exactamente una vez.
// Un fallo al resolver suscripciones se propaga, nunca se colapsa a éxito
// vacío; la lista vacía es un resultado exitoso ("sin derechos adicionales").
func (uc *EntitlementsUseCase) GetActiveModuleTypes(ctx context.Context, companyID string) ([]string, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()

	subIDs, err := uc.subRepo.GetValidSubscriptionIDs(ctx, companyID, now)
	if err != nil {
		return nil, fmt.Errorf("resolver suscripciones vigentes: %w", err)
	}
	if len(subIDs) == 0 {
		return []string{}, nil
	}

	types, err := uc.subRepo.GetActiveCreditModuleTypes(ctx, subIDs, now)
	if err != nil {
		return nil, fmt.Errorf("resolver créditos vigentes: %w", err)
	}

	seen := make(map[string]struct{}, len(types))
	out := make([]string, 0, len(types))
	for _, t := range types {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

// HasActiveModule informa si la empresa tiene vigente el tipo de módulo dado.
// Devuelve false (sin error) si no lo tiene; error solo ante fallos de
// infraestructura.
func (uc *EntitlementsUseCase) HasActiveModule(ctx context.Context, companyID, moduleType string) (bool, error) {
	if companyID == "" || moduleType == "" {
		return false, domain.ErrInvalidInput
	}
	types, err := uc.GetActiveModuleTypes(ctx, companyID)
	if err != nil {
		return false, err
	}
	for _, t := range types {
		if t == moduleType {
			return true, nil
		}
	}
	return false, nil
}
