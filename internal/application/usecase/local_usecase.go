package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tiendafacil/ventas-api/internal/application/dto"
	"github.com/tiendafacil/ventas-api/internal/domain"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
	"github.com/tiendafacil/ventas-api/internal/domain/repository"
)

// LocalUseCase gestión de locales (solo admin). La creación y la reasignación
// mantienen la consistencia dual Local.UserID ↔ User.LocalesAsignados dentro
// de una única transacción.
type LocalUseCase struct {
	repo     repository.LocalRepository
	userRepo repository.UserRepository
	txRunner LocalTxRunner
}

// NewLocalUseCase construye el caso de uso.
func NewLocalUseCase(repo repository.LocalRepository, userRepo repository.UserRepository, txRunner LocalTxRunner) *LocalUseCase {
	return &LocalUseCase{repo: repo, userRepo: userRepo, txRunner: txRunner}
}

// Create crea un local asignado a un usuario existente y agrega la
// back-reference en locales_asignados, todo en una transacción.
func (uc *LocalUseCase) Create(ctx context.Context, in dto.CreateLocalRequest) (*dto.LocalResponse, error) {
	user, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	local := &entity.Local{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		UserID:    in.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.txRunner.RunLocals(ctx, func(
		localRepo repository.LocalRepository,
		userRepo repository.UserRepository,
	) error {
		if err := localRepo.Create(local); err != nil {
			return err
		}
		return userRepo.AddLocalAsignado(in.UserID, local.ID)
	})
	if err != nil {
		return nil, err
	}
	return toLocalResponse(local), nil
}

// GetByID obtiene un local por ID.
func (uc *LocalUseCase) GetByID(id string) (*dto.LocalResponse, error) {
	local, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, nil
	}
	return toLocalResponse(local), nil
}

// Update actualiza nombre, dirección o teléfono (sin tocar la asignación).
func (uc *LocalUseCase) Update(id string, in dto.UpdateLocalRequest) (*dto.LocalResponse, error) {
	local, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, nil
	}
	if in.Name != nil {
		local.Name = *in.Name
	}
	if in.Address != nil {
		local.Address = *in.Address
	}
	if in.Phone != nil {
		local.Phone = *in.Phone
	}
	local.UpdatedAt = time.Now()
	if err := uc.repo.Update(local); err != nil {
		return nil, err
	}
	return toLocalResponse(local), nil
}

// ReassignUser cambia el usuario asignado de un local.
//
// En una sola transacción: actualiza Local.UserID, quita la back-reference
// del usuario anterior y la agrega al nuevo. Así nunca existe un estado
// visible donde el local apunte a un usuario sin la referencia simétrica.
func (uc *LocalUseCase) ReassignUser(ctx context.Context, localID string, in dto.ReassignLocalRequest) (*dto.LocalResponse, error) {
	local, err := uc.repo.GetByID(localID)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, domain.ErrNotFound
	}
	newUser, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if newUser == nil {
		return nil, domain.ErrUserNotFound
	}
	if local.UserID == in.UserID {
		return toLocalResponse(local), nil // sin cambios
	}

	previousUserID := local.UserID
	local.UserID = in.UserID
	local.UpdatedAt = time.Now()

	err = uc.txRunner.RunLocals(ctx, func(
		localRepo repository.LocalRepository,
		userRepo repository.UserRepository,
	) error {
		if err := localRepo.Update(local); err != nil {
			return err
		}
		if previousUserID != "" {
			if err := userRepo.RemoveLocalAsignado(previousUserID, local.ID); err != nil {
				return err
			}
		}
		return userRepo.AddLocalAsignado(in.UserID, local.ID)
	})
	if err != nil {
		return nil, err
	}
	return toLocalResponse(local), nil
}

// List lista locales con paginación.
func (uc *LocalUseCase) List(limit, offset int) (*dto.LocalListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocalResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocalResponse(l))
	}
	return &dto.LocalListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un local y su back-reference en el usuario asignado.
func (uc *LocalUseCase) Delete(ctx context.Context, id string) error {
	local, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if local == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.RunLocals(ctx, func(
		localRepo repository.LocalRepository,
		userRepo repository.UserRepository,
	) error {
		if local.UserID != "" {
			if err := userRepo.RemoveLocalAsignado(local.UserID, id); err != nil {
				return err
			}
		}
		return localRepo.Delete(id)
	})
}

func toLocalResponse(l *entity.Local) *dto.LocalResponse {
	if l == nil {
		return nil
	}
	return &dto.LocalResponse{
		ID:        l.ID,
		Name:      l.Name,
		Address:   l.Address,
		Phone:     l.Phone,
		UserID:    l.UserID,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
