package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tiendafacil/ventas-api/internal/application/auth"
	"github.com/tiendafacil/ventas-api/internal/application/dto"
	"github.com/tiendafacil/ventas-api/internal/domain"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

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
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) AddLocalAsignado(userID, localID string) error {
	u := r.users[userID]
	for _, l := range u.LocalesAsignados {
		if l == localID {
			return nil
		}
	}
	u.LocalesAsignados = append(u.LocalesAsignados, localID)
	return nil
}
func (r *fakeUserRepo) RemoveLocalAsignado(userID, localID string) error {
	u := r.users[userID]
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
func (r *fakeUserRepo) CountByRole(role string) (int, error) {
	n := 0
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}
func (r *fakeUserRepo) Delete(id string) error { delete(r.users, id); return nil }

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

func buildAuthUC(users ...*entity.User) (*auth.AuthUseCase, *fakeUserRepo, *fakeLocalRepo) {
	userRepo := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		userRepo.users[u.ID] = u
	}
	localRepo := &fakeLocalRepo{locals: map[string]*entity.Local{}}
	uc := auth.NewAuthUseCase(userRepo, localRepo, auth.JWTConfig{
		Secret: "test-secret", ExpMinutes: 60, Issuer: "test",
	})
	return uc, userRepo, localRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ResolveSession — rol persistido → vista efectiva
// ──────────────────────────────────────────────────────────────────────────────

// Un usuario "local" siempre obtiene la vista local, pida lo que pida.
func TestResolveSession_LocalSiempreVistaLocal(t *testing.T) {
	uc, _, localRepo := buildAuthUC(&entity.User{
		ID: "u1", Name: "Vendedor", Role: entity.RoleLocal,
	})
	localRepo.locals["local-centro"] = &entity.Local{ID: "local-centro", UserID: "u1"}

	for _, requested := range []string{"", "local", "admin"} {
		out, err := uc.ResolveSession("u1", requested)
		require.NoError(t, err)
		assert.Equal(t, "local", out.View, "requestedView=%q no debe alterar la vista", requested)
		assert.False(t, out.SimulatedLocal)
		assert.Equal(t, "local-centro", out.LocalID)
		assert.Equal(t, "/local-dashboard", out.HomeRoute)
	}
}

// Un admin obtiene vista admin por defecto.
func TestResolveSession_AdminVistaAdmin(t *testing.T) {
	uc, _, _ := buildAuthUC(&entity.User{
		ID: "a1", Name: "Dueño", Role: entity.RoleAdmin,
	})

	out, err := uc.ResolveSession("a1", "")
	require.NoError(t, err)
	assert.Equal(t, "admin", out.Role)
	assert.Equal(t, "admin", out.View)
	assert.False(t, out.SimulatedLocal)
	assert.Equal(t, "/admin-dashboard", out.HomeRoute)
}

// Un admin que pide la vista local la recibe como simulación, sin cambiar su rol.
func TestResolveSession_AdminSimulaVistaLocal(t *testing.T) {
	uc, userRepo, _ := buildAuthUC(&entity.User{
		ID: "a1", Name: "Dueño", Role: entity.RoleAdmin,
	})

	out, err := uc.ResolveSession("a1", "local")
	require.NoError(t, err)
	assert.Equal(t, "admin", out.Role, "el rol persistido no cambia")
	assert.Equal(t, "local", out.View)
	assert.True(t, out.SimulatedLocal)
	assert.Equal(t, "/local-dashboard", out.HomeRoute)

	// La simulación es efímera: nada se persiste en la cuenta.
	assert.Equal(t, entity.RoleAdmin, userRepo.users["a1"].Role)

	// Una resolución posterior sin vista solicitada vuelve a admin.
	again, err := uc.ResolveSession("a1", "")
	require.NoError(t, err)
	assert.Equal(t, "admin", again.View)
	assert.False(t, again.SimulatedLocal)
}

// Cuenta inexistente: sesión no autenticada, jamás un rol por defecto.
func TestResolveSession_CuentaInexistente(t *testing.T) {
	uc, _, _ := buildAuthUC()

	out, err := uc.ResolveSession("u-fantasma", "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Nil(t, out)
}

// Rol desconocido almacenado: denegar en vez de degradar a un rol válido.
func TestResolveSession_RolDesconocido(t *testing.T) {
	uc, _, _ := buildAuthUC(&entity.User{
		ID: "u1", Role: "superuser",
	})

	_, err := uc.ResolveSession("u1", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login / RegisterUser
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_ResuelveLocalDelVendedor(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)

	uc, _, localRepo := buildAuthUC(&entity.User{
		ID: "u1", Email: "vendedor@tienda.com", PasswordHash: string(hash),
		Role: entity.RoleLocal, LocalesAsignados: []string{"local-centro"},
	})
	localRepo.locals["local-centro"] = &entity.Local{ID: "local-centro", UserID: "u1"}

	out, err := uc.Login(dto.LoginRequest{Email: "vendedor@tienda.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "local-centro", out.LocalID, "el login debe resolver el local asignado")
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	uc, _, _ := buildAuthUC(&entity.User{
		ID: "u1", Email: "vendedor@tienda.com", PasswordHash: string(hash), Role: entity.RoleLocal,
	})

	_, err := uc.Login(dto.LoginRequest{Email: "vendedor@tienda.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegisterUser_RolPorDefectoEsLocal(t *testing.T) {
	uc, userRepo, _ := buildAuthUC()

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "nuevo@tienda.com", Password: "secreto123", Name: "Nuevo",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleLocal, out.Role)
	assert.Equal(t, entity.RoleLocal, userRepo.users[out.ID].Role)
}

func TestRegisterUser_RolInventadoRechazado(t *testing.T) {
	uc, _, _ := buildAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "nuevo@tienda.com", Password: "secreto123", Role: "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _, _ := buildAuthUC(&entity.User{
		ID: "u1", Email: "dup@tienda.com", Role: entity.RoleLocal,
	})

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "dup@tienda.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}
