package subscription_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Suscripciones-api/internal/application/subscription"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests GetActiveModuleTypes
// ──────────────────────────────────────────────────────────────────────────────

// Dos suscripciones vigentes otorgan accounting dos veces y hr una: el
// resultado colapsa por tipo, cada uno aparece exactamente una vez.
func TestEntitlements_TiposDuplicadosColapsan(t *testing.T) {
	repo := &fakeSubRepo{
		validIDs:    []string{"sub-1", "sub-2"},
		activeTypes: []string{"accounting", "hr", "accounting"},
	}
	uc := subscription.NewEntitlementsUseCase(repo, testClock)

	types, err := uc.GetActiveModuleTypes(context.Background(), "company-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"accounting", "hr"}, types,
		"dedupe por tipo preservando el orden de aparición")
}

// Sin suscripciones vigentes: éxito con lista vacía, no un error.
func TestEntitlements_SinSuscripcionesVigentes_VacioExitoso(t *testing.T) {
	repo := &fakeSubRepo{validIDs: nil}
	uc := subscription.NewEntitlementsUseCase(repo, testClock)

	types, err := uc.GetActiveModuleTypes(context.Background(), "company-1")
	require.NoError(t, err)
	assert.NotNil(t, types)
	assert.Empty(t, types, "sin derechos no es un fallo")
}

// Fallo al resolver suscripciones: se propaga, jamás se colapsa a vacío.
func TestEntitlements_FalloDeSuscripciones_SePropaga(t *testing.T) {
	infraErr := errors.New("db caída")
	repo := &fakeSubRepo{validErr: infraErr}
	uc := subscription.NewEntitlementsUseCase(repo, testClock)

	types, err := uc.GetActiveModuleTypes(context.Background(), "company-1")
	assert.ErrorIs(t, err, infraErr)
	assert.Nil(t, types)
}

// Fallo al resolver créditos: también se propaga.
func TestEntitlements_FalloDeCreditos_SePropaga(t *testing.T) {
	infraErr := errors.New("db caída")
	repo := &fakeSubRepo{
		validIDs: []string{"sub-1"},
		typesErr: infraErr,
	}
	uc := subscription.NewEntitlementsUseCase(repo, testClock)

	_, err := uc.GetActiveModuleTypes(context.Background(), "company-1")
	assert.ErrorIs(t, err, infraErr)
}

// CompanyID vacío: entrada inválida.
func TestEntitlements_CompanyIDVacio_Invalido(t *testing.T) {
	uc := subscription.NewEntitlementsUseCase(&fakeSubRepo{}, testClock)

	_, err := uc.GetActiveModuleTypes(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GetValidSubscriptions
// ──────────────────────────────────────────────────────────────────────────────

func TestEntitlements_SuscripcionesVigentes(t *testing.T) {
	repo := &fakeSubRepo{validIDs: []string{"sub-1", "sub-2"}}
	uc := subscription.NewEntitlementsUseCase(repo, testClock)

	ids, err := uc.GetValidSubscriptions(context.Background(), "company-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"sub-1", "sub-2"}, ids)
}

func TestEntitlements_SuscripcionesVigentes_FalloSePropaga(t *testing.T) {
	infraErr := errors.New("timeout")
	repo := &fakeSubRepo{validErr: infraErr}
	uc := subscription.NewEntitlementsUseCase(repo, testClock)

	_, err := uc.GetValidSubscriptions(context.Background(), "company-1")
	assert.ErrorIs(t, err, infraErr)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests HasActiveModule
// ──────────────────────────────────────────────────────────────────────────────

func TestEntitlements_HasActiveModule(t *testing.T) {
	repo := &fakeSubRepo{
		validIDs:    []string{"sub-1"},
		activeTypes: []string{"accounting", "basic"},
	}
	uc := subscription.NewEntitlementsUseCase(repo, testClock)

	ok, err := uc.HasActiveModule(context.Background(), "company-1", "accounting")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.HasActiveModule(context.Background(), "company-1", "hr")
	require.NoError(t, err)
	assert.False(t, ok, "tipo sin crédito vigente no está habilitado")
}

func TestEntitlements_HasActiveModule_FalloSePropaga(t *testing.T) {
	infraErr := errors.New("db caída")
	repo := &fakeSubRepo{validErr: infraErr}
	uc := subscription.NewEntitlementsUseCase(repo, testClock)

	ok, err := uc.HasActiveModule(context.Background(), "company-1", "accounting")
	assert.ErrorIs(t, err, infraErr)
	assert.False(t, ok)
}
