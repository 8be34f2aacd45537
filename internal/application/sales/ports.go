package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
	"github.com/tiendafacil/ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el registro de
// ventas: descuento de stock de N productos + alta del registro de venta,
// todo o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// SaleEvent evento publicado al feed en tiempo real cuando se registra una venta.
type SaleEvent struct {
	SaleID        string          `json:"sale_id"`
	LocalID       string          `json:"local_id"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Date          time.Time       `json:"date"`
}

// SaleFeed publica eventos de venta para los dashboards suscritos.
// La publicación es best-effort: un feed caído no debe impedir la venta.
type SaleFeed interface {
	Publish(ctx context.Context, event SaleEvent) error
}

// ReceiptPDFGenerator genera el ticket PDF de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, local *entity.Local) ([]byte, error)
}
