package dto

import "time"

// CreateLocalRequest entrada para crear un local y asignarle un usuario.
type CreateLocalRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=200"`
	Address string `json:"address" validate:"required,min=5"`
	Phone   string `json:"phone"`
	UserID  string `json:"user_id" validate:"required"`
}

// UpdateLocalRequest entrada para actualizar datos de un local (sin reasignar usuario).
type UpdateLocalRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=200"`
	Address *string `json:"address" validate:"omitempty,min=5"`
	Phone   *string `json:"phone"`
}

// ReassignLocalRequest entrada para reasignar el usuario de un local.
type ReassignLocalRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// LocalResponse salida de un local.
type LocalResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone,omitempty"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocalListResponse lista paginada de locales.
type LocalListResponse struct {
	Items []LocalResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
