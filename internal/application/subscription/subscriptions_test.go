package subscription_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Suscripciones-api/internal/application/subscription"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
)

func seededSubRepo() *fakeSubRepo {
	return &fakeSubRepo{
		subs: []*entity.Subscription{
			{ID: "sub-1", CompanyID: "company-1", Status: entity.SubscriptionStatusActive},
			{ID: "sub-2", CompanyID: "company-1", Status: entity.SubscriptionStatusInactive},
			{ID: "sub-ajena", CompanyID: "company-2", Status: entity.SubscriptionStatusActive},
		},
	}
}

func TestSubscriptions_Cancel(t *testing.T) {
	repo := seededSubRepo()
	uc := subscription.NewSubscriptionUseCase(repo)

	err := uc.Cancel(context.Background(), "company-1", "sub-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusInactive, repo.statusByID["sub-1"])
}

// Cancelar dos veces: la segunda es conflicto, no idempotencia silenciosa.
func TestSubscriptions_Cancel_YaInactiva_Conflicto(t *testing.T) {
	repo := seededSubRepo()
	uc := subscription.NewSubscriptionUseCase(repo)

	err := uc.Cancel(context.Background(), "company-1", "sub-2")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSubscriptions_Cancel_DeOtraEmpresa_Forbidden(t *testing.T) {
	repo := seededSubRepo()
	uc := subscription.NewSubscriptionUseCase(repo)

	err := uc.Cancel(context.Background(), "company-1", "sub-ajena")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, repo.statusByID, "no debe tocarse la suscripción ajena")
}

func TestSubscriptions_Cancel_Inexistente_NotFound(t *testing.T) {
	repo := seededSubRepo()
	uc := subscription.NewSubscriptionUseCase(repo)

	err := uc.Cancel(context.Background(), "company-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubscriptions_GetByID_DeOtraEmpresa_Forbidden(t *testing.T) {
	repo := seededSubRepo()
	uc := subscription.NewSubscriptionUseCase(repo)

	_, err := uc.GetByID(context.Background(), "company-1", "sub-ajena")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSubscriptions_List_SoloDeLaEmpresa(t *testing.T) {
	repo := seededSubRepo()
	uc := subscription.NewSubscriptionUseCase(repo)

	out, err := uc.List(context.Background(), "company-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	for _, item := range out.Items {
		assert.Equal(t, "company-1", item.CompanyID)
	}
}
