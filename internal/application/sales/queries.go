package sales

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tiendafacil/ventas-api/internal/application/dto"
	"github.com/tiendafacil/ventas-api/internal/domain"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
	"github.com/tiendafacil/ventas-api/internal/domain/repository"
)

// SaleQueryUseCase consultas de lectura sobre el libro de ventas: historial y
// resumen diario. El rol "local" siempre queda acotado a su propio local.
type SaleQueryUseCase struct {
	saleRepo repository.SaleRepository
}

// NewSaleQueryUseCase construye el caso de uso.
func NewSaleQueryUseCase(saleRepo repository.SaleRepository) *SaleQueryUseCase {
	return &SaleQueryUseCase{saleRepo: saleRepo}
}

// ListSales devuelve el historial de ventas, más reciente primero.
// Un usuario "local" solo ve su local; un admin puede filtrar por localID o ver todo.
func (uc *SaleQueryUseCase) ListSales(role, tokenLocalID, localID string, limit, offset int) (*dto.SaleListResponse, error) {
	effectiveLocal, err := scopeLocal(role, tokenLocalID, localID)
	if err != nil {
		return nil, err
	}
	list, err := uc.saleRepo.List(repository.SaleFilter{
		LocalID: effectiveLocal,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DailySummary devuelve las ventas de hoy con ingresos, cantidad y ticket promedio.
func (uc *SaleQueryUseCase) DailySummary(role, tokenLocalID, localID string, now time.Time) (*dto.DailySummaryResponse, error) {
	effectiveLocal, err := scopeLocal(role, tokenLocalID, localID)
	if err != nil {
		return nil, err
	}

	// Hoy: 00:00:00 – 24:00:00 (límite superior exclusivo)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	list, err := uc.saleRepo.List(repository.SaleFilter{
		LocalID: effectiveLocal,
		From:    dayStart,
		To:      dayEnd,
	})
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		revenue = revenue.Add(s.Total)
		items = append(items, *ToSaleResponse(s))
	}
	average := decimal.Zero
	if len(list) > 0 {
		average = revenue.Div(decimal.NewFromInt(int64(len(list)))).Round(2)
	}

	return &dto.DailySummaryResponse{
		Date:        dayStart.Format("2006-01-02"),
		LocalID:     effectiveLocal,
		Revenue:     revenue,
		SaleCount:   len(list),
		AverageSale: average,
		Sales:       items,
	}, nil
}

// scopeLocal aplica la regla de visibilidad: un usuario "local" queda fijado a
// su local asignado (sin local asignado no hay datos que mostrar); un admin
// puede pedir un local concreto o el agregado de todos (vacío).
func scopeLocal(role, tokenLocalID, requestedLocalID string) (string, error) {
	if role == entity.RoleAdmin {
		return requestedLocalID, nil
	}
	if tokenLocalID == "" {
		return "", domain.ErrNoAssignedLocal
	}
	return tokenLocalID, nil
}
