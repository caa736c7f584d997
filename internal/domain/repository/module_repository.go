package repository

import (
	"context"

	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
)

// ModuleRepository define el puerto de lectura del catálogo de módulos.
type ModuleRepository interface {
	// GetByIDs devuelve los módulos existentes entre los ids pedidos, indexados
	// por id. Los ids que no existen simplemente no aparecen en el mapa: la
	// ausencia no es un error por sí misma.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Module, error)
	// GetByType devuelve el módulo del tipo dado, o nil si no existe.
	// Si hay más de uno del mismo tipo, devuelve el más antiguo (determinista).
	GetByType(ctx context.Context, moduleType string) (*entity.Module, error)
	// List devuelve el catálogo completo con sus sub-características.
	List(ctx context.Context) ([]*entity.Module, error)
	// Create persiste un módulo con sus sub-características (seed y administración).
	Create(ctx context.Context, module *entity.Module) error
}
