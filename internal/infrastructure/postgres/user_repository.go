package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tiendafacil/ventas-api/internal/domain"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
	"github.com/tiendafacil/ventas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
// locales_asignados es un TEXT[]; se modifica solo con array_append/array_remove
// para mantener la simetría con locals.user_id.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Email único.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, role, locales_asignados, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role,
		user.LocalesAsignados, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, name, role, COALESCE(locales_asignados, '{}'), created_at, updated_at
		FROM users WHERE id = $1`
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.LocalesAsignados, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetByEmail obtiene un usuario por email (login).
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, name, role, COALESCE(locales_asignados, '{}'), created_at, updated_at
		FROM users WHERE email = $1`
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.LocalesAsignados, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// Update actualiza los datos del usuario. No toca locales_asignados
// (ver AddLocalAsignado / RemoveLocalAsignado).
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET email = $2, password_hash = $3, name = $4, role = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AddLocalAsignado agrega la back-reference del local al usuario (idempotente).
// Si el usuario ya no existe devuelve ErrUserNotFound, para que una tx en curso
// haga rollback en vez de dejar el local sin referencia simétrica.
func (r *UserRepo) AddLocalAsignado(userID, localID string) error {
	query := `
		UPDATE users
		SET locales_asignados = CASE
				WHEN $2 = ANY(COALESCE(locales_asignados, '{}')) THEN locales_asignados
				ELSE array_append(COALESCE(locales_asignados, '{}'), $2)
			END,
			updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, userID, localID)
	if err != nil {
		return fmt.Errorf("add local asignado: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// RemoveLocalAsignado quita la back-reference del local (idempotente).
func (r *UserRepo) RemoveLocalAsignado(userID, localID string) error {
	query := `
		UPDATE users
		SET locales_asignados = array_remove(COALESCE(locales_asignados, '{}'), $2), updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, userID, localID)
	if err != nil {
		return fmt.Errorf("remove local asignado: %w", err)
	}
	return nil
}

// ListByRole lista usuarios por rol con paginación. Rol vacío lista todos.
func (r *UserRepo) ListByRole(role string, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT id, email, password_hash, name, role, COALESCE(locales_asignados, '{}'), created_at, updated_at
		FROM users
		WHERE ($1::text = '' OR role = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, role, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.LocalesAsignados, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// CountByRole cuenta usuarios por rol (dashboard admin).
func (r *UserRepo) CountByRole(role string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM users WHERE role = $1`, role,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return count, nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
