package usecase

import (
	"fmt"

	"github.com/tiendafacil/ventas-api/internal/application/dto"
	"github.com/tiendafacil/ventas-api/internal/domain"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
	"github.com/tiendafacil/ventas-api/internal/domain/repository"
)

// UserUseCase consultas administrativas sobre cuentas de usuario.
// El alta va por auth (registro) y las back-references de locales se
// gestionan desde LocalUseCase; aquí solo lectura y baja.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID (sin hash de password en la respuesta).
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return toUserResponse(user), nil
}

// List lista usuarios, opcionalmente filtrados por rol (vacío = todos).
func (uc *UserUseCase) List(role string, limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.ListByRole(role, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una cuenta por ID. Se rechaza mientras el usuario tenga
// locales asignados: borrarlo dejaría Local.UserID apuntando a una cuenta
// inexistente. Primero hay que reasignar o eliminar esos locales.
func (uc *UserUseCase) Delete(id string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if len(user.LocalesAsignados) > 0 {
		return fmt.Errorf("%w: el usuario tiene %d local(es) asignado(s)",
			domain.ErrConflict, len(user.LocalesAsignados))
	}
	return uc.repo.Delete(id)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	locales := u.LocalesAsignados
	if locales == nil {
		locales = []string{}
	}
	return &dto.UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Role:             u.Role,
		LocalesAsignados: locales,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
