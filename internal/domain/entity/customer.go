package entity

import "time"

// Customer representa un cliente registrado desde el formulario de alta.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
