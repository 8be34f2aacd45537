package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo compartido entre locales.
// Stock es global (todos los locales venden del mismo contador) y nunca
// puede quedar negativo; solo lo descuenta el registro de ventas.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio unitario de venta
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
