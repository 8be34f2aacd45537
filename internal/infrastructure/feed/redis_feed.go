// Package feed publica y distribuye los eventos de venta en tiempo real.
// Los dashboards se suscriben vía SSE; el transporte entre instancias es
// Redis pub/sub, con una implementación no-op cuando Redis no está configurado.
package feed

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/tiendafacil/ventas-api/internal/application/sales"
)

// Canal de pub/sub para los eventos de venta.
const saleChannel = "ventas:feed"

var _ sales.SaleFeed = (*RedisFeed)(nil)

// RedisFeed publica eventos de venta por Redis pub/sub y permite suscribirse
// a ellos (un suscriptor por conexión SSE).
type RedisFeed struct {
	client *redis.Client
}

// NewRedisFeed construye el feed y valida la conexión.
func NewRedisFeed(addr, password string, db int) (*RedisFeed, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisFeed{client: client}, nil
}

// Publish serializa el evento y lo publica en el canal de ventas.
func (f *RedisFeed) Publish(ctx context.Context, event sales.SaleEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal sale event: %w", err)
	}
	if err := f.client.Publish(ctx, saleChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish sale event: %w", err)
	}
	return nil
}

// Subscribe abre una suscripción al canal de ventas. El channel devuelto se
// cierra cuando el contexto termina; cancelar el contexto libera la conexión
// (equivalente al unsubscribe al desconectarse el cliente SSE).
func (f *RedisFeed) Subscribe(ctx context.Context) <-chan sales.SaleEvent {
	sub := f.client.Subscribe(ctx, saleChannel)
	out := make(chan sales.SaleEvent)

	go func() {
		defer close(out)
		defer func() { _ = sub.Close() }()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event sales.SaleEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Close libera el cliente Redis.
func (f *RedisFeed) Close() error {
	return f.client.Close()
}
