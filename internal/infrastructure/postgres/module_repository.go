package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
)

var _ repository.ModuleRepository = (*ModuleRepo)(nil)

// ModuleRepo implementación de ModuleRepository (usable con pool o tx).
type ModuleRepo struct {
	q Querier
}

// NewModuleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewModuleRepository(q Querier) *ModuleRepo {
	return &ModuleRepo{q: q}
}

// GetByIDs devuelve los módulos existentes indexados por id. Los ids que no
// existen no aparecen en el mapa: la ausencia no es un error.
func (r *ModuleRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Module, error) {
	if len(ids) == 0 {
		return map[string]*entity.Module{}, nil
	}
	query := `
		SELECT id, type, name, price, created_at, updated_at
		FROM modules WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve modules: %w", err)
	}
	defer rows.Close()

	result := make(map[string]*entity.Module)
	for rows.Next() {
		var m entity.Module
		if err := rows.Scan(&m.ID, &m.Type, &m.Name, &m.Price, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		result[m.ID] = &m
	}
	return result, rows.Err()
}

// GetByType devuelve el módulo del tipo dado, o nil si no existe. Si el
// catálogo tuviera más de uno del mismo tipo, devuelve el más antiguo para
// que la línea sintetizada sea determinista.
func (r *ModuleRepo) GetByType(ctx context.Context, moduleType string) (*entity.Module, error) {
	query := `
		SELECT id, type, name, price, created_at, updated_at
		FROM modules WHERE type = $1 ORDER BY created_at LIMIT 1`
	var m entity.Module
	err := r.q.QueryRow(ctx, query, moduleType).Scan(
		&m.ID, &m.Type, &m.Name, &m.Price, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get module by type: %w", err)
	}
	return &m, nil
}

// List devuelve el catálogo completo con sus sub-características.
func (r *ModuleRepo) List(ctx context.Context) ([]*entity.Module, error) {
	query := `
		SELECT id, type, name, price, created_at, updated_at
		FROM modules ORDER BY created_at`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	var list []*entity.Module
	byID := make(map[string]*entity.Module)
	for rows.Next() {
		var m entity.Module
		if err := rows.Scan(&m.ID, &m.Type, &m.Name, &m.Price, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		list = append(list, &m)
		byID[m.ID] = &m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	featureRows, err := r.q.Query(ctx, `SELECT id, module_id, name FROM module_sub_features ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list sub features: %w", err)
	}
	defer featureRows.Close()
	for featureRows.Next() {
		var f entity.SubFeature
		if err := featureRows.Scan(&f.ID, &f.ModuleID, &f.Name); err != nil {
			return nil, fmt.Errorf("scan sub feature: %w", err)
		}
		if m, ok := byID[f.ModuleID]; ok {
			m.SubFeatures = append(m.SubFeatures, f)
		}
	}
	return list, featureRows.Err()
}

// Create persiste un módulo con sus sub-características (seed y administración).
func (r *ModuleRepo) Create(ctx context.Context, module *entity.Module) error {
	if module.ID == "" {
		module.ID = uuid.New().String()
	}
	query := `
		INSERT INTO modules (id, type, name, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		module.ID, module.Type, module.Name, module.Price,
		module.CreatedAt, module.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("module type already exists: %w", err)
		}
		return fmt.Errorf("insert module: %w", err)
	}
	for i := range module.SubFeatures {
		f := &module.SubFeatures[i]
		if f.ID == "" {
			f.ID = uuid.New().String()
		}
		f.ModuleID = module.ID
		_, err := r.q.Exec(ctx,
			`INSERT INTO module_sub_features (id, module_id, name) VALUES ($1, $2, $3)`,
			f.ID, f.ModuleID, f.Name,
		)
		if err != nil {
			return fmt.Errorf("insert sub feature: %w", err)
		}
	}
	return nil
}
