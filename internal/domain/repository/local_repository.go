package repository

import "github.com/tiendafacil/ventas-api/internal/domain/entity"

// LocalRepository define el puerto de persistencia para Local (DIP).
type LocalRepository interface {
	Create(local *entity.Local) error
	GetByID(id string) (*entity.Local, error)
	GetByUserID(userID string) (*entity.Local, error)
	Update(local *entity.Local) error
	List(limit, offset int) ([]*entity.Local, error)
	Delete(id string) error
}
