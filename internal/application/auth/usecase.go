package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/tiendafacil/ventas-api/internal/application/dto"
	"github.com/tiendafacil/ventas-api/internal/domain"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
	"github.com/tiendafacil/ventas-api/internal/domain/repository"
	"github.com/tiendafacil/ventas-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y resolución de sesión.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	localRepo repository.LocalRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, localRepo repository.LocalRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, localRepo: localRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// El rol por defecto es "local"; devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role := in.Role
	if role == "" {
		role = entity.RoleLocal
	}
	if role != entity.RoleAdmin && role != entity.RoleLocal {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, resuelve el local asignado (rol "local"),
// genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	localID := uc.resolveLocal(user)
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, localID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		User:    *toUserResponse(user),
		LocalID: localID,
	}, nil
}

// resolveLocal determina el local activo de un usuario "local": primero el
// registro en locals cuyo user_id apunta al usuario, y si no existe, la
// primera back-reference de locales_asignados. Admins no tienen local.
func (uc *AuthUseCase) resolveLocal(user *entity.User) string {
	if user.Role != entity.RoleLocal {
		return ""
	}
	if local, err := uc.localRepo.GetByUserID(user.ID); err == nil && local != nil {
		return local.ID
	}
	return user.PrimaryLocal()
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
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
