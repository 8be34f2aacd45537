package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleLocal = "local"
)

// User representa una cuenta del sistema.
// LocalesAsignados son las back-references a los locales cuyo UserID apunta
// a este usuario; para rol "local" el primer elemento se trata como "el" local.
type User struct {
	ID               string
	Email            string
	PasswordHash     string // bcrypt hash, nunca plano en dominio después de persistir
	Name             string
	Role             string // admin, local
	LocalesAsignados []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PrimaryLocal devuelve el local activo del usuario (primero de la lista) o vacío.
func (u *User) PrimaryLocal() string {
	if len(u.LocalesAsignados) == 0 {
		return ""
	}
	return u.LocalesAsignados[0]
}
