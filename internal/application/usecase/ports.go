package usecase

import (
	"context"

	"github.com/tiendafacil/ventas-api/internal/domain/repository"
)

// LocalTxRunner ejecuta una función dentro de una transacción con repos de
// locales y usuarios atados a la tx. Lo usa la reasignación de locales para
// mantener la consistencia dual Local.UserID ↔ User.LocalesAsignados sin
// estados intermedios visibles.
type LocalTxRunner interface {
	RunLocals(ctx context.Context, fn func(
		localRepo repository.LocalRepository,
		userRepo repository.UserRepository,
	) error) error
}
