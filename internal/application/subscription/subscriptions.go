package subscription

import (
	"context"

	"github.com/jhoicas/Suscripciones-api/internal/application/dto"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
)

// SubscriptionUseCase lecturas y cancelación de suscripciones. La cancelación
// es la única mutación permitida sobre una suscripción: flip de estado a
// inactiva; nada se borra.
type SubscriptionUseCase struct {
	subRepo repository.SubscriptionRepository
}

// NewSubscriptionUseCase construye el caso de uso.
func NewSubscriptionUseCase(subRepo repository.SubscriptionRepository) *SubscriptionUseCase {
	return &SubscriptionUseCase{subRepo: subRepo}
}

// GetByID obtiene una suscripción de la empresa.
func (uc *SubscriptionUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.SubscriptionResponse, error) {
	sub, err := uc.subRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	if sub.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toSubscriptionResponse(sub), nil
}

// List lista las suscripciones de la empresa con paginación.
func (uc *SubscriptionUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.SubscriptionListResponse, error) {
	list, err := uc.subRepo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SubscriptionResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSubscriptionResponse(s))
	}
	return &dto.SubscriptionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Cancel marca la suscripción como inactiva. Devuelve domain.ErrConflict si ya
// lo estaba. No toca los créditos: el camino de lectura deja de verlos porque
// la suscripción padre deja de ser vigente.
func (uc *SubscriptionUseCase) Cancel(ctx context.Context, companyID, id string) error {
	sub, err := uc.subRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sub == nil {
		return domain.ErrNotFound
	}
	if sub.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if sub.Status == entity.SubscriptionStatusInactive {
		return domain.ErrConflict
	}
	return uc.subRepo.UpdateStatus(ctx, id, entity.SubscriptionStatusInactive)
}

func toSubscriptionResponse(s *entity.Subscription) *dto.SubscriptionResponse {
	if s == nil {
		return nil
	}
	return &dto.SubscriptionResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		OrderID:   s.OrderID,
		Status:    s.Status,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
	}
}
