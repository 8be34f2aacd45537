package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea del carrito: producto y cantidad solicitada.
type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// RecordSaleRequest entrada para registrar una venta.
// LocalID solo lo puede fijar un admin; para rol "local" se resuelve del token.
type RecordSaleRequest struct {
	Items         []SaleItemRequest `json:"items" validate:"required,min=1"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash card"`
	LocalID       string            `json:"local_id"`
}

// SaleItemResponse línea de venta persistida (con snapshot de nombre).
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta con sus líneas embebidas.
type SaleResponse struct {
	ID            string             `json:"id"`
	LocalID       string             `json:"local_id"`
	PaymentMethod string             `json:"payment_method"`
	Total         decimal.Decimal    `json:"total"`
	Date          time.Time          `json:"date"`
	Items         []SaleItemResponse `json:"items"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// DailySummaryResponse resumen del día: ventas, ingresos y ticket promedio.
type DailySummaryResponse struct {
	Date        string          `json:"date"` // YYYY-MM-DD
	LocalID     string          `json:"local_id,omitempty"`
	Revenue     decimal.Decimal `json:"revenue"`
	SaleCount   int             `json:"sale_count"`
	AverageSale decimal.Decimal `json:"average_sale"`
	Sales       []SaleResponse  `json:"sales"`
}
