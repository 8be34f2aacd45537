package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tiendafacil/ventas-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de agregación de solo lectura para los dashboards.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analytics.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesMetrics devuelve ingresos y cantidad de ventas del rango.
// localID vacío agrega todos los locales; startDate en cero no acota por abajo.
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, localID string, startDate, endDate time.Time) (repository.SalesMetricsResult, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE ($1::text = '' OR local_id = $1)
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND date < $3`

	var start any
	if !startDate.IsZero() {
		start = startDate
	}

	var result repository.SalesMetricsResult
	err := r.q.QueryRow(ctx, query, localID, start, endDate).Scan(&result.Revenue, &result.SaleCount)
	if err != nil {
		return repository.SalesMetricsResult{}, fmt.Errorf("sales metrics: %w", err)
	}
	return result, nil
}

// GetMonthlyRevenue devuelve los ingresos agrupados por mes calendario.
func (r *AnalyticsRepo) GetMonthlyRevenue(ctx context.Context, startDate, endDate time.Time) ([]repository.MonthlyRevenueResult, error) {
	query := `
		SELECT EXTRACT(YEAR FROM date)::int, EXTRACT(MONTH FROM date)::int, COALESCE(SUM(total), 0)
		FROM sales
		WHERE date >= $1 AND date < $2
		GROUP BY 1, 2
		ORDER BY 1, 2`
	rows, err := r.q.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyRevenueResult
	for rows.Next() {
		var year, month int
		var revenue decimal.Decimal
		if err := rows.Scan(&year, &month, &revenue); err != nil {
			return nil, fmt.Errorf("scan monthly revenue: %w", err)
		}
		results = append(results, repository.MonthlyRevenueResult{
			Year:    year,
			Month:   time.Month(month),
			Revenue: revenue,
		})
	}
	return results, rows.Err()
}
