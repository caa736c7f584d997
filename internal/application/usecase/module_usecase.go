package usecase

import (
	"context"

	"github.com/jhoicas/Suscripciones-api/internal/application/dto"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
)

// ModuleService expone el catálogo de módulos vendibles. Es de solo lectura:
// las líneas de orden y los créditos referencian módulos, nunca los poseen.
type ModuleService struct {
	moduleRepo repository.ModuleRepository
}

// NewModuleService construye el servicio de catálogo.
func NewModuleService(moduleRepo repository.ModuleRepository) *ModuleService {
	return &ModuleService{moduleRepo: moduleRepo}
}

// List devuelve el catálogo completo con sub-características.
func (s *ModuleService) List(ctx context.Context) (*dto.ModuleListResponse, error) {
	modules, err := s.moduleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ModuleResponse, 0, len(modules))
	for _, m := range modules {
		items = append(items, *toModuleResponse(m))
	}
	return &dto.ModuleListResponse{Items: items}, nil
}

// GetByType busca un módulo por su tipo (enumeración cerrada).
func (s *ModuleService) GetByType(ctx context.Context, moduleType string) (*dto.ModuleResponse, error) {
	if moduleType == "" {
		return nil, domain.ErrInvalidInput
	}
	m, err := s.moduleRepo.GetByType(ctx, moduleType)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toModuleResponse(m), nil
}

func toModuleResponse(m *entity.Module) *dto.ModuleResponse {
	if m == nil {
		return nil
	}
	features := make([]string, 0, len(m.SubFeatures))
	for _, f := range m.SubFeatures {
		features = append(features, f.Name)
	}
	return &dto.ModuleResponse{
		ID:          m.ID,
		Type:        m.Type,
		Name:        m.Name,
		Price:       m.Price,
		SubFeatures: features,
	}
}
