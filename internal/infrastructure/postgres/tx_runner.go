package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tiendafacil/ventas-api/internal/application/sales"
	"github.com/tiendafacil/ventas-api/internal/application/usecase"
	"github.com/tiendafacil/ventas-api/internal/domain/repository"
)

// Ensure TxRunner implements sales.TxRunner and usecase.LocalTxRunner.
var _ sales.TxRunner = (*TxRunner)(nil)
var _ usecase.LocalTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con repos de productos y ventas atados a la tx
// y hace Commit o Rollback. Lo usa el registro de ventas.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	saleRepo := NewSaleRepository(tx)

	if err := fn(productRepo, saleRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLocals inicia una transacción con repos de locales y usuarios
// (consistencia dual local ↔ locales_asignados).
func (r *TxRunner) RunLocals(ctx context.Context, fn func(
	localRepo repository.LocalRepository,
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	localRepo := NewLocalRepository(tx)
	userRepo := NewUserRepository(tx)

	if err := fn(localRepo, userRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
