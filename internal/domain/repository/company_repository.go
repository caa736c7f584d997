package repository

import "github.com/jhoicas/Suscripciones-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByNIT(nit string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
}
