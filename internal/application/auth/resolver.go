package auth

import (
	"github.com/tiendafacil/ventas-api/internal/application/dto"
	"github.com/tiendafacil/ventas-api/internal/domain"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
)

// Vistas efectivas que puede presentar el frontend.
const (
	ViewAdmin = "admin"
	ViewLocal = "local"
)

// Rutas por defecto de cada vista.
const (
	homeRouteAdmin = "/admin-dashboard"
	homeRouteLocal = "/local-dashboard"
)

// ResolveSession resuelve el estado de sesión de un usuario autenticado:
// rol persistido → vista efectiva, con simulación de vista "local" para admins.
//
// Reglas:
//   - Cuenta inexistente → ErrUserNotFound: la sesión se trata como no
//     autenticada (nunca se asigna un rol por defecto).
//   - Rol "local" → vista local siempre; requestedView se ignora.
//   - Rol "admin" → vista admin, salvo requestedView == "local", que activa la
//     simulación. Es estado puramente de respuesta: no se persiste nada.
//   - Cualquier otro rol almacenado → ErrForbidden.
func (uc *AuthUseCase) ResolveSession(userID, requestedView string) (*dto.SessionResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	switch user.Role {
	case entity.RoleLocal:
		return &dto.SessionResponse{
			UserID:    user.ID,
			Name:      user.Name,
			Role:      entity.RoleLocal,
			View:      ViewLocal,
			LocalID:   uc.resolveLocal(user),
			HomeRoute: homeRouteLocal,
		}, nil
	case entity.RoleAdmin:
		resp := &dto.SessionResponse{
			UserID:    user.ID,
			Name:      user.Name,
			Role:      entity.RoleAdmin,
			View:      ViewAdmin,
			HomeRoute: homeRouteAdmin,
		}
		if requestedView == ViewLocal {
			resp.View = ViewLocal
			resp.SimulatedLocal = true
			resp.HomeRoute = homeRouteLocal
		}
		return resp, nil
	default:
		// Rol desconocido en la cuenta: denegar en vez de degradar a un rol válido.
		return nil, domain.ErrForbidden
	}
}
