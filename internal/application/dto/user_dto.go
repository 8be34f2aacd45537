package dto

import "time"

// RegisterRequest entrada para registro (auth). Role por defecto es "local".
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	Role     string `json:"role" validate:"omitempty,oneof=admin local"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	LocalesAsignados []string  `json:"locales_asignados"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y el local resuelto para usuarios "local".
type LoginResponse struct {
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
	LocalID string       `json:"local_id,omitempty"`
}

// SessionResponse estado de sesión resuelto (Role/View Resolver).
// View es la vista efectiva a presentar; SimulatedLocal indica que un admin
// está previsualizando la vista local sin cambiar permisos.
type SessionResponse struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	Role           string `json:"role"` // rol persistido: admin | local
	View           string `json:"view"` // vista efectiva: admin | local
	SimulatedLocal bool   `json:"simulated_local"`
	LocalID        string `json:"local_id,omitempty"`
	HomeRoute      string `json:"home_route"` // ruta por defecto de la vista
}
