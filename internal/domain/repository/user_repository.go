package repository

import (
	"context"

	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndCompany(email, companyID string) (*entity.User, error)
	// IsMember informa si el usuario pertenece a la empresa. Consulta EXISTS
	// directa para una respuesta O(1) vía índice.
	IsMember(ctx context.Context, userID, companyID string) (bool, error)
}
