package feed

import (
	"context"

	"github.com/tiendafacil/ventas-api/internal/application/sales"
)

var _ sales.SaleFeed = (*NopFeed)(nil)

// NopFeed implementación no-op del feed, para despliegues sin Redis.
// Publish descarta los eventos y Subscribe devuelve un canal que solo se
// cierra al cancelar el contexto.
type NopFeed struct{}

// NewNopFeed construye el feed no-op.
func NewNopFeed() *NopFeed { return &NopFeed{} }

// Publish descarta el evento.
func (*NopFeed) Publish(context.Context, sales.SaleEvent) error { return nil }

// Subscribe devuelve un canal sin eventos, cerrado al cancelar ctx.
func (*NopFeed) Subscribe(ctx context.Context) <-chan sales.SaleEvent {
	out := make(chan sales.SaleEvent)
	go func() {
		<-ctx.Done()
		close(out)
	}()
	return out
}

// Close no hace nada.
func (*NopFeed) Close() error { return nil }
