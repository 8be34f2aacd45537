package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesMetricsResult resultado crudo de la consulta de métricas de ventas.
// Lo produce la DB; el use case lo convierte en DTO.
type SalesMetricsResult struct {
	Revenue   decimal.Decimal // suma de totales de venta del período
	SaleCount int
}

// MonthlyRevenueResult ingresos agregados de un mes calendario.
type MonthlyRevenueResult struct {
	Year    int
	Month   time.Month
	Revenue decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para los dashboards.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetSalesMetrics devuelve ingresos y cantidad de ventas del rango dado.
	// localID vacío agrega todos los locales (vista admin).
	GetSalesMetrics(ctx context.Context, localID string, startDate, endDate time.Time) (SalesMetricsResult, error)

	// GetMonthlyRevenue devuelve los ingresos por mes calendario del rango.
	// Meses sin ventas no aparecen; el use case los completa con cero.
	GetMonthlyRevenue(ctx context.Context, startDate, endDate time.Time) ([]MonthlyRevenueResult, error)
}
