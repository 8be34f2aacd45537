package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendafacil/ventas-api/internal/application/dto"
	"github.com/tiendafacil/ventas-api/internal/application/usecase"
	"github.com/tiendafacil/ventas-api/internal/domain"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests: baja de usuarios y la referencia Local.UserID
// ──────────────────────────────────────────────────────────────────────────────

// Eliminar un usuario con locales asignados se rechaza con conflicto:
// el local quedaría apuntando a una cuenta inexistente.
func TestUserDelete_ConLocalAsignado_Rechazado(t *testing.T) {
	localUC, localRepo, userRepo := buildLocalUC(
		&entity.User{ID: "u1", Role: entity.RoleLocal},
	)
	out, err := localUC.Create(context.Background(), dto.CreateLocalRequest{
		Name: "Sucursal Centro", Address: "Calle Mayor 1", UserID: "u1",
	})
	require.NoError(t, err)

	userUC := usecase.NewUserUseCase(userRepo)
	err = userUC.Delete("u1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.NotNil(t, userRepo.users["u1"], "la cuenta sigue existiendo")
	assert.Equal(t, "u1", localRepo.locals[out.ID].UserID,
		"el local conserva un usuario existente")
}

// Tras reasignar el local a otro usuario, la baja del anterior procede.
func TestUserDelete_TrasReasignacion_Procede(t *testing.T) {
	localUC, localRepo, userRepo := buildLocalUC(
		&entity.User{ID: "u1", Role: entity.RoleLocal},
		&entity.User{ID: "u2", Role: entity.RoleLocal},
	)
	out, err := localUC.Create(context.Background(), dto.CreateLocalRequest{
		Name: "Sucursal Centro", Address: "Calle Mayor 1", UserID: "u1",
	})
	require.NoError(t, err)
	_, err = localUC.ReassignUser(context.Background(), out.ID, dto.ReassignLocalRequest{UserID: "u2"})
	require.NoError(t, err)

	userUC := usecase.NewUserUseCase(userRepo)
	require.NoError(t, userUC.Delete("u1"))

	assert.NotContains(t, userRepo.users, "u1")
	assert.Equal(t, "u2", localRepo.locals[out.ID].UserID)
}

// Eliminar el local también libera la cuenta para la baja.
func TestUserDelete_TrasEliminarLocal_Procede(t *testing.T) {
	localUC, _, userRepo := buildLocalUC(
		&entity.User{ID: "u1", Role: entity.RoleLocal},
	)
	out, err := localUC.Create(context.Background(), dto.CreateLocalRequest{
		Name: "Sucursal Centro", Address: "Calle Mayor 1", UserID: "u1",
	})
	require.NoError(t, err)
	require.NoError(t, localUC.Delete(context.Background(), out.ID))

	userUC := usecase.NewUserUseCase(userRepo)
	require.NoError(t, userUC.Delete("u1"))
	assert.NotContains(t, userRepo.users, "u1")
}

// Baja de una cuenta inexistente.
func TestUserDelete_Inexistente(t *testing.T) {
	_, _, userRepo := buildLocalUC()
	userUC := usecase.NewUserUseCase(userRepo)
	assert.ErrorIs(t, userUC.Delete("u-fantasma"), domain.ErrUserNotFound)
}
