package entity

import "time"

// Local representa un local o punto de venta.
// UserID referencia al usuario asignado; el usuario mantiene la
// back-reference en LocalesAsignados (consistencia dual, ver LocalUseCase).
type Local struct {
	ID        string
	Name      string
	Address   string
	Phone     string // opcional
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
