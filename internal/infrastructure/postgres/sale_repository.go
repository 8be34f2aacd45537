package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
	"github.com/tiendafacil/ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
// Una venta son una fila en sales y N filas en sale_items; Create debe correr
// dentro de la misma transacción que el descuento de stock.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta con sus líneas.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, local_id, payment_method, total, date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		sale.ID, sale.LocalID, sale.PaymentMethod, sale.Total, sale.Date, sale.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, item := range sale.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, product_name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, sale.ID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta con sus líneas.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	ctx := context.Background()
	var s entity.Sale
	err := r.q.QueryRow(ctx, `
		SELECT id, local_id, payment_method, total, date, created_by
		FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.LocalID, &s.PaymentMethod, &s.Total, &s.Date, &s.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	items, err := r.loadItems(ctx, []string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Items = items[s.ID]
	return &s, nil
}

// List lista ventas según el filtro, las más recientes primero.
func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	ctx := context.Background()
	query := `
		SELECT id, local_id, payment_method, total, date, created_by
		FROM sales
		WHERE ($1::text = '' OR local_id = $1)
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date < $3)
		ORDER BY date DESC
		LIMIT NULLIF($4, 0) OFFSET $5`

	var from, to any
	if !filter.From.IsZero() {
		from = filter.From
	}
	if !filter.To.IsZero() {
		to = filter.To
	}

	rows, err := r.q.Query(ctx, query, filter.LocalID, from, to, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	var ids []string
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.LocalID, &s.PaymentMethod, &s.Total, &s.Date, &s.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, &s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return sales, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range sales {
		s.Items = items[s.ID]
	}
	return sales, nil
}

// loadItems carga las líneas de un conjunto de ventas en una sola consulta.
func (r *SaleRepo) loadItems(ctx context.Context, saleIDs []string) (map[string][]entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = ANY($1) ORDER BY sale_id, id`,
		saleIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]entity.SaleItem, len(saleIDs))
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items[it.SaleID] = append(items[it.SaleID], it)
	}
	return items, rows.Err()
}
