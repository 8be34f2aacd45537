package sales_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendafacil/ventas-api/internal/application/sales"
	"github.com/tiendafacil/ventas-api/internal/domain"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
)

// saleAt crea una venta mínima para poblar el repo fake.
func saleAt(id, localID string, total string, date time.Time) *entity.Sale {
	return &entity.Sale{
		ID:            id,
		LocalID:       localID,
		PaymentMethod: entity.PaymentCash,
		Total:         decimal.RequireFromString(total),
		Date:          date,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests DailySummary
// ──────────────────────────────────────────────────────────────────────────────

// El resumen diario solo incluye ventas de hoy y calcula el ticket promedio.
func TestDailySummary_SoloVentasDeHoy(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	saleRepo := &fakeSaleRepo{sales: []*entity.Sale{
		saleAt("s1", testLocalID, "10.00", now.Add(-2*time.Hour)),
		saleAt("s2", testLocalID, "5.50", now.Add(-10*time.Minute)),
		saleAt("s3", testLocalID, "99.99", now.AddDate(0, 0, -1)), // ayer
	}}
	uc := sales.NewSaleQueryUseCase(saleRepo)

	out, err := uc.DailySummary(entity.RoleLocal, testLocalID, "", now)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", out.Date)
	assert.Equal(t, 2, out.SaleCount, "la venta de ayer queda fuera")
	assert.True(t, out.Revenue.Equal(decimal.RequireFromString("15.50")),
		"ingresos: 10.00 + 5.50 = 15.50, fue %s", out.Revenue)
	assert.True(t, out.AverageSale.Equal(decimal.RequireFromString("7.75")),
		"ticket promedio 15.50/2 = 7.75, fue %s", out.AverageSale)
}

// Día sin ventas: todo en cero, sin división por cero.
func TestDailySummary_DiaSinVentas(t *testing.T) {
	uc := sales.NewSaleQueryUseCase(&fakeSaleRepo{})

	out, err := uc.DailySummary(entity.RoleLocal, testLocalID, "", time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0, out.SaleCount)
	assert.True(t, out.Revenue.IsZero())
	assert.True(t, out.AverageSale.IsZero())
	assert.Empty(t, out.Sales)
}

// Un usuario "local" solo ve su local, aunque pida otro por query.
func TestDailySummary_LocalNoVeOtrosLocales(t *testing.T) {
	now := time.Now()
	saleRepo := &fakeSaleRepo{sales: []*entity.Sale{
		saleAt("s1", testLocalID, "10.00", now),
		saleAt("s2", "local-norte", "20.00", now),
	}}
	uc := sales.NewSaleQueryUseCase(saleRepo)

	out, err := uc.DailySummary(entity.RoleLocal, testLocalID, "local-norte", now)
	require.NoError(t, err)

	assert.Equal(t, testLocalID, out.LocalID, "el filtro del query se ignora para rol local")
	assert.Equal(t, 1, out.SaleCount)
}

// Un admin sin filtro ve el agregado de todos los locales.
func TestDailySummary_AdminVeTodosLosLocales(t *testing.T) {
	now := time.Now()
	saleRepo := &fakeSaleRepo{sales: []*entity.Sale{
		saleAt("s1", testLocalID, "10.00", now),
		saleAt("s2", "local-norte", "20.00", now),
	}}
	uc := sales.NewSaleQueryUseCase(saleRepo)

	out, err := uc.DailySummary(entity.RoleAdmin, "", "", now)
	require.NoError(t, err)

	assert.Equal(t, 2, out.SaleCount)
	assert.True(t, out.Revenue.Equal(decimal.RequireFromString("30.00")))
}

// Usuario "local" sin local asignado no tiene historial que consultar.
func TestListSales_SinLocalAsignado(t *testing.T) {
	uc := sales.NewSaleQueryUseCase(&fakeSaleRepo{})

	_, err := uc.ListSales(entity.RoleLocal, "", "", 20, 0)
	assert.ErrorIs(t, err, domain.ErrNoAssignedLocal)
}

// El historial de un usuario "local" queda acotado a su local.
func TestListSales_ScopePorLocal(t *testing.T) {
	now := time.Now()
	saleRepo := &fakeSaleRepo{sales: []*entity.Sale{
		saleAt("s1", testLocalID, "10.00", now),
		saleAt("s2", "local-norte", "20.00", now),
		saleAt("s3", testLocalID, "4.00", now),
	}}
	uc := sales.NewSaleQueryUseCase(saleRepo)

	out, err := uc.ListSales(entity.RoleLocal, testLocalID, "", 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	for _, s := range out.Items {
		assert.Equal(t, testLocalID, s.LocalID)
	}
}
