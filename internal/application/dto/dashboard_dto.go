package dto

import "github.com/shopspring/decimal"

// MonthlyRevenueDTO ingresos de un mes del año en curso (meses sin ventas van en cero).
type MonthlyRevenueDTO struct {
	Month   string          `json:"month"` // Ene, Feb, ...
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardSummaryDTO resumen del dashboard admin: ingresos y ventas
// agregados de todos los locales más la serie mensual del año.
type DashboardSummaryDTO struct {
	TotalRevenue   decimal.Decimal     `json:"total_revenue"`
	TotalSales     int                 `json:"total_sales"`
	LocalUserCount int                 `json:"local_user_count"`
	MonthlyRevenue []MonthlyRevenueDTO `json:"monthly_revenue"`
}
