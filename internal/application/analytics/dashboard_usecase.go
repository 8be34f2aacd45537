// Package analytics contiene los casos de uso de agregación para el
// dashboard del administrador.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tiendafacil/ventas-api/internal/application/dto"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
	"github.com/tiendafacil/ventas-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen global del admin: ingresos y cantidad de
// ventas de todos los locales, usuarios "local" activos y la serie mensual
// del año en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	userRepo      repository.UserRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, userRepo repository.UserRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, userRepo: userRepo}
}

// GetSummary construye el DashboardSummaryDTO global (todos los locales).
//
// Tres consultas en paralelo:
//  1. GetSalesMetrics(histórico)   → TotalRevenue + TotalSales
//  2. GetMonthlyRevenue(año)       → MonthlyRevenue (12 meses, ceros incluidos)
//  3. CountByRole("local")         → LocalUserCount
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	yearEnd := yearStart.AddDate(1, 0, 0)

	type metricsResult struct {
		metrics repository.SalesMetricsResult
		err     error
	}
	type monthlyResult struct {
		rows []repository.MonthlyRevenueResult
		err  error
	}
	type countResult struct {
		count int
		err   error
	}

	metricsCh := make(chan metricsResult, 1)
	monthlyCh := make(chan monthlyResult, 1)
	usersCh := make(chan countResult, 1)

	go func() {
		m, err := uc.analyticsRepo.GetSalesMetrics(ctx, "", time.Time{}, now)
		metricsCh <- metricsResult{m, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetMonthlyRevenue(ctx, yearStart, yearEnd)
		monthlyCh <- monthlyResult{rows, err}
	}()
	go func() {
		n, err := uc.userRepo.CountByRole(entity.RoleLocal)
		usersCh <- countResult{n, err}
	}()

	metrics := <-metricsCh
	monthly := <-monthlyCh
	users := <-usersCh

	if metrics.err != nil {
		return nil, fmt.Errorf("dashboard: métricas globales: %w", metrics.err)
	}
	if monthly.err != nil {
		return nil, fmt.Errorf("dashboard: serie mensual: %w", monthly.err)
	}
	if users.err != nil {
		return nil, fmt.Errorf("dashboard: usuarios locales: %w", users.err)
	}

	return &dto.DashboardSummaryDTO{
		TotalRevenue:   metrics.metrics.Revenue.Round(2),
		TotalSales:     metrics.metrics.SaleCount,
		LocalUserCount: users.count,
		MonthlyRevenue: fillMonths(now.Year(), monthly.rows),
	}, nil
}

// Etiquetas de meses para la serie del dashboard.
var monthLabels = [...]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

// fillMonths completa los 12 meses del año con cero donde no hubo ventas,
// para que el gráfico siempre tenga la serie completa.
func fillMonths(year int, rows []repository.MonthlyRevenueResult) []dto.MonthlyRevenueDTO {
	byMonth := make(map[time.Month]decimal.Decimal, len(rows))
	for _, r := range rows {
		if r.Year == year {
			byMonth[r.Month] = r.Revenue
		}
	}
	out := make([]dto.MonthlyRevenueDTO, 0, 12)
	for m := time.January; m <= time.December; m++ {
		revenue, ok := byMonth[m]
		if !ok {
			revenue = decimal.Zero
		}
		out = append(out, dto.MonthlyRevenueDTO{
			Month:   monthLabels[m-1],
			Revenue: revenue,
		})
	}
	return out
}
