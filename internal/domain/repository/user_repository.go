package repository

import "github.com/tiendafacil/ventas-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Las back-references de locales (locales_asignados) se modifican solo vía
// AddLocalAsignado / RemoveLocalAsignado para mantener la simetría con Local.UserID.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	AddLocalAsignado(userID, localID string) error
	RemoveLocalAsignado(userID, localID string) error
	ListByRole(role string, limit, offset int) ([]*entity.User, error)
	CountByRole(role string) (int, error)
	Delete(id string) error
}
