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

var _ repository.LocalRepository = (*LocalRepo)(nil)

// LocalRepo implementación del puerto LocalRepository sobre PostgreSQL (usable con pool o tx).
type LocalRepo struct {
	q Querier
}

// NewLocalRepository construye el adaptador de persistencia para locales. Pasar pool o tx (Querier).
func NewLocalRepository(q Querier) *LocalRepo {
	return &LocalRepo{q: q}
}

// Create persiste un nuevo local.
func (r *LocalRepo) Create(local *entity.Local) error {
	query := `
		INSERT INTO locals (id, name, address, phone, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		local.ID, local.Name, local.Address, local.Phone, local.UserID,
		local.CreatedAt, local.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert local: %w", err)
	}
	return nil
}

// GetByID obtiene un local por ID.
func (r *LocalRepo) GetByID(id string) (*entity.Local, error) {
	query := `
		SELECT id, name, address, phone, user_id, created_at, updated_at
		FROM locals WHERE id = $1`
	var l entity.Local
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.Name, &l.Address, &l.Phone, &l.UserID, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get local: %w", err)
	}
	return &l, nil
}

// GetByUserID obtiene el local asignado al usuario. Si el usuario tuviera más
// de uno, devuelve el más antiguo (el "primero" asignado).
func (r *LocalRepo) GetByUserID(userID string) (*entity.Local, error) {
	query := `
		SELECT id, name, address, phone, user_id, created_at, updated_at
		FROM locals WHERE user_id = $1 ORDER BY created_at ASC LIMIT 1`
	var l entity.Local
	err := r.q.QueryRow(context.Background(), query, userID).Scan(
		&l.ID, &l.Name, &l.Address, &l.Phone, &l.UserID, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get local by user: %w", err)
	}
	return &l, nil
}

// Update actualiza un local existente, incluido su usuario asignado.
func (r *LocalRepo) Update(local *entity.Local) error {
	query := `
		UPDATE locals SET name = $2, address = $3, phone = $4, user_id = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		local.ID, local.Name, local.Address, local.Phone, local.UserID, local.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update local: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista locales con paginación.
func (r *LocalRepo) List(limit, offset int) ([]*entity.Local, error) {
	query := `
		SELECT id, name, address, phone, user_id, created_at, updated_at
		FROM locals ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locals: %w", err)
	}
	defer rows.Close()

	var locals []*entity.Local
	for rows.Next() {
		var l entity.Local
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.Phone, &l.UserID, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan local: %w", err)
		}
		locals = append(locals, &l)
	}
	return locals, rows.Err()
}

// Delete elimina un local por ID.
func (r *LocalRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM locals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete local: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
