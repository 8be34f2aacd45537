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
	"github.com/tiendafacil/ventas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeLocalRepo struct {
	locals map[string]*entity.Local
}

func (r *fakeLocalRepo) Create(l *entity.Local) error { r.locals[l.ID] = l; return nil }
func (r *fakeLocalRepo) GetByID(id string) (*entity.Local, error) {
	l, ok := r.locals[id]
	if !ok {
		return nil, nil
	}
	return l, nil
}
func (r *fakeLocalRepo) GetByUserID(userID string) (*entity.Local, error) {
	for _, l := range r.locals {
		if l.UserID == userID {
			return l, nil
		}
	}
	return nil, nil
}
func (r *fakeLocalRepo) Update(l *entity.Local) error                    { r.locals[l.ID] = l; return nil }
func (r *fakeLocalRepo) List(limit, offset int) ([]*entity.Local, error) { return nil, nil }
func (r *fakeLocalRepo) Delete(id string) error                          { delete(r.locals, id); return nil }

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(u *entity.User) error                   { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) AddLocalAsignado(userID, localID string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for _, l := range u.LocalesAsignados {
		if l == localID {
			return nil
		}
	}
	u.LocalesAsignados = append(u.LocalesAsignados, localID)
	return nil
}
func (r *fakeUserRepo) RemoveLocalAsignado(userID, localID string) error {
	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	out := u.LocalesAsignados[:0]
	for _, l := range u.LocalesAsignados {
		if l != localID {
			out = append(out, l)
		}
	}
	u.LocalesAsignados = out
	return nil
}
func (r *fakeUserRepo) ListByRole(role string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) CountByRole(role string) (int, error) { return 0, nil }
func (r *fakeUserRepo) Delete(id string) error               { delete(r.users, id); return nil }

// fakeLocalTxRunner pasa los repos reales al callback; los tests verifican la
// simetría final de las referencias, no el aislamiento de la tx.
type fakeLocalTxRunner struct {
	localRepo *fakeLocalRepo
	userRepo  *fakeUserRepo
}

func (tx *fakeLocalTxRunner) RunLocals(ctx context.Context, fn func(
	localRepo repository.LocalRepository,
	userRepo repository.UserRepository,
) error) error {
	return fn(tx.localRepo, tx.userRepo)
}

func buildLocalUC(users ...*entity.User) (*usecase.LocalUseCase, *fakeLocalRepo, *fakeUserRepo) {
	localRepo := &fakeLocalRepo{locals: map[string]*entity.Local{}}
	userRepo := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		userRepo.users[u.ID] = u
	}
	txRunner := &fakeLocalTxRunner{localRepo: localRepo, userRepo: userRepo}
	return usecase.NewLocalUseCase(localRepo, userRepo, txRunner), localRepo, userRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests: consistencia dual Local.UserID ↔ User.LocalesAsignados
// ──────────────────────────────────────────────────────────────────────────────

// Crear un local agrega la back-reference en el usuario asignado.
func TestLocalCreate_AgregaBackReference(t *testing.T) {
	uc, localRepo, userRepo := buildLocalUC(
		&entity.User{ID: "u1", Role: entity.RoleLocal},
	)

	out, err := uc.Create(context.Background(), dto.CreateLocalRequest{
		Name: "Sucursal Centro", Address: "Calle Mayor 1", UserID: "u1",
	})
	require.NoError(t, err)

	local := localRepo.locals[out.ID]
	require.NotNil(t, local)
	assert.Equal(t, "u1", local.UserID)
	assert.Contains(t, userRepo.users["u1"].LocalesAsignados, out.ID,
		"el usuario debe quedar con la back-reference al local")
}

// Crear un local para un usuario inexistente falla sin persistir nada.
func TestLocalCreate_UsuarioInexistente(t *testing.T) {
	uc, localRepo, _ := buildLocalUC()

	_, err := uc.Create(context.Background(), dto.CreateLocalRequest{
		Name: "Sucursal Centro", Address: "Calle Mayor 1", UserID: "u-fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Empty(t, localRepo.locals)
}

// Reasignar el local mueve la back-reference del usuario anterior al nuevo.
func TestLocalReassign_MueveBackReference(t *testing.T) {
	uc, localRepo, userRepo := buildLocalUC(
		&entity.User{ID: "u1", Role: entity.RoleLocal},
		&entity.User{ID: "u2", Role: entity.RoleLocal},
	)
	out, err := uc.Create(context.Background(), dto.CreateLocalRequest{
		Name: "Sucursal Centro", Address: "Calle Mayor 1", UserID: "u1",
	})
	require.NoError(t, err)

	_, err = uc.ReassignUser(context.Background(), out.ID, dto.ReassignLocalRequest{UserID: "u2"})
	require.NoError(t, err)

	assert.Equal(t, "u2", localRepo.locals[out.ID].UserID)
	assert.NotContains(t, userRepo.users["u1"].LocalesAsignados, out.ID,
		"el usuario anterior pierde la back-reference")
	assert.Contains(t, userRepo.users["u2"].LocalesAsignados, out.ID,
		"el nuevo usuario la gana")
}

// Reasignar al mismo usuario es un no-op.
func TestLocalReassign_MismoUsuarioNoOp(t *testing.T) {
	uc, _, userRepo := buildLocalUC(
		&entity.User{ID: "u1", Role: entity.RoleLocal},
	)
	out, err := uc.Create(context.Background(), dto.CreateLocalRequest{
		Name: "Sucursal Centro", Address: "Calle Mayor 1", UserID: "u1",
	})
	require.NoError(t, err)

	res, err := uc.ReassignUser(context.Background(), out.ID, dto.ReassignLocalRequest{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", res.UserID)
	assert.Equal(t, []string{out.ID}, userRepo.users["u1"].LocalesAsignados,
		"sin duplicados ni cambios")
}

// El usuario destino desaparece entre la verificación previa y la transacción:
// AddLocalAsignado no encuentra la fila, devuelve ErrUserNotFound y la
// operación falla en lugar de dejar el local sin back-reference.
func TestLocalReassign_UsuarioDesapareceAntesDeTx(t *testing.T) {
	localRepo := &fakeLocalRepo{locals: map[string]*entity.Local{}}
	checkRepo := &fakeUserRepo{users: map[string]*entity.User{
		"u1": {ID: "u1", Role: entity.RoleLocal},
		"u2": {ID: "u2", Role: entity.RoleLocal},
	}}
	// El repo de la tx ya no tiene a u2: simula la fila eliminada en medio.
	txUserRepo := &fakeUserRepo{users: map[string]*entity.User{
		"u1": {ID: "u1", Role: entity.RoleLocal},
	}}
	uc := usecase.NewLocalUseCase(localRepo, checkRepo,
		&fakeLocalTxRunner{localRepo: localRepo, userRepo: txUserRepo})

	out, err := uc.Create(context.Background(), dto.CreateLocalRequest{
		Name: "Sucursal Centro", Address: "Calle Mayor 1", UserID: "u1",
	})
	require.NoError(t, err)

	_, err = uc.ReassignUser(context.Background(), out.ID, dto.ReassignLocalRequest{UserID: "u2"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// Eliminar un local limpia la back-reference del usuario asignado.
func TestLocalDelete_LimpiaBackReference(t *testing.T) {
	uc, localRepo, userRepo := buildLocalUC(
		&entity.User{ID: "u1", Role: entity.RoleLocal},
	)
	out, err := uc.Create(context.Background(), dto.CreateLocalRequest{
		Name: "Sucursal Centro", Address: "Calle Mayor 1", UserID: "u1",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), out.ID))

	assert.NotContains(t, localRepo.locals, out.ID)
	assert.Empty(t, userRepo.users["u1"].LocalesAsignados)
}
