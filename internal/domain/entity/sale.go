package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago válidos.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
)

// Sale es un registro del libro de ventas: una venta con sus líneas embebidas.
// Las ventas son inmutables una vez creadas (solo alta y lectura).
type Sale struct {
	ID            string
	LocalID       string
	PaymentMethod string // cash, card
	Total         decimal.Decimal
	Date          time.Time
	CreatedBy     string // usuario que registró la venta
	Items         []SaleItem
}

// SaleItem es una línea de venta. ProductName es un snapshot del nombre al
// momento de la venta, para sobrevivir renombres o bajas del producto.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
