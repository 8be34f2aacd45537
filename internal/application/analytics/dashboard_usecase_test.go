package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendafacil/ventas-api/internal/application/analytics"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
	"github.com/tiendafacil/ventas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeAnalyticsRepo struct {
	metrics repository.SalesMetricsResult
	monthly []repository.MonthlyRevenueResult
}

func (r *fakeAnalyticsRepo) GetSalesMetrics(_ context.Context, localID string, _, _ time.Time) (repository.SalesMetricsResult, error) {
	return r.metrics, nil
}

func (r *fakeAnalyticsRepo) GetMonthlyRevenue(_ context.Context, _, _ time.Time) ([]repository.MonthlyRevenueResult, error) {
	return r.monthly, nil
}

type fakeUserCounter struct {
	localUsers int
}

func (r *fakeUserCounter) Create(*entity.User) error                  { return nil }
func (r *fakeUserCounter) GetByID(string) (*entity.User, error)       { return nil, nil }
func (r *fakeUserCounter) GetByEmail(string) (*entity.User, error)    { return nil, nil }
func (r *fakeUserCounter) Update(*entity.User) error                  { return nil }
func (r *fakeUserCounter) AddLocalAsignado(_, _ string) error         { return nil }
func (r *fakeUserCounter) RemoveLocalAsignado(_, _ string) error      { return nil }
func (r *fakeUserCounter) ListByRole(string, int, int) ([]*entity.User, error) {
	return nil, nil
}
func (r *fakeUserCounter) CountByRole(role string) (int, error) {
	if role == entity.RoleLocal {
		return r.localUsers, nil
	}
	return 0, nil
}
func (r *fakeUserCounter) Delete(string) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Tests GetSummary
// ──────────────────────────────────────────────────────────────────────────────

// La serie mensual siempre tiene 12 meses: los meses sin ventas van en cero.
func TestGetSummary_SerieMensualCompleta(t *testing.T) {
	year := time.Now().Year()
	uc := analytics.NewDashboardUseCase(&fakeAnalyticsRepo{
		metrics: repository.SalesMetricsResult{
			Revenue:   decimal.RequireFromString("1500.00"),
			SaleCount: 42,
		},
		monthly: []repository.MonthlyRevenueResult{
			{Year: year, Month: time.March, Revenue: decimal.RequireFromString("500.00")},
			{Year: year, Month: time.July, Revenue: decimal.RequireFromString("1000.00")},
		},
	}, &fakeUserCounter{localUsers: 3})

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.True(t, out.TotalRevenue.Equal(decimal.RequireFromString("1500.00")))
	assert.Equal(t, 42, out.TotalSales)
	assert.Equal(t, 3, out.LocalUserCount)

	require.Len(t, out.MonthlyRevenue, 12, "la serie debe cubrir los 12 meses")
	assert.Equal(t, "Ene", out.MonthlyRevenue[0].Month)
	assert.Equal(t, "Dic", out.MonthlyRevenue[11].Month)
	assert.True(t, out.MonthlyRevenue[0].Revenue.IsZero(), "enero sin ventas va en cero")
	assert.True(t, out.MonthlyRevenue[2].Revenue.Equal(decimal.RequireFromString("500.00")), "marzo")
	assert.True(t, out.MonthlyRevenue[6].Revenue.Equal(decimal.RequireFromString("1000.00")), "julio")
}

// Sin ventas en el año: 12 meses de ceros, nunca una serie vacía.
func TestGetSummary_SinVentas(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeAnalyticsRepo{}, &fakeUserCounter{})

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.True(t, out.TotalRevenue.IsZero())
	assert.Equal(t, 0, out.TotalSales)
	require.Len(t, out.MonthlyRevenue, 12)
	for i, m := range out.MonthlyRevenue {
		assert.True(t, m.Revenue.IsZero(), "mes %d debe ir en cero", i+1)
	}
}
