package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/tiendafacil/ventas-api/internal/application/sales"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
)

// SaleFeedSubscriber abre una suscripción al feed de ventas en tiempo real.
// El canal se cierra al cancelar el contexto (desconexión del cliente).
type SaleFeedSubscriber interface {
	Subscribe(ctx context.Context) <-chan sales.SaleEvent
}

// StreamHandler expone el feed de ventas vía Server-Sent Events para los
// dashboards. Cada conexión abre su propia suscripción y la libera al
// desconectarse el cliente.
type StreamHandler struct {
	feed SaleFeedSubscriber
}

// NewStreamHandler construye el handler.
func NewStreamHandler(feed SaleFeedSubscriber) *StreamHandler {
	return &StreamHandler{feed: feed}
}

// Intervalo de keepalive para que los proxies no corten la conexión SSE.
const keepAliveInterval = 25 * time.Second

// SalesFeed godoc
// @Summary      Stream SSE de ventas en tiempo real
// @Tags         dashboard
// @Security     Bearer
// @Produce      text/event-stream
// @Success      200  "event: sale / data: {sale_id, local_id, total, ...}"
// @Router       /api/dashboard/sales/stream [get]
func (h *StreamHandler) SalesFeed(c *fiber.Ctx) error {
	// El filtro de local se fija ANTES de abrir el stream: un usuario "local"
	// solo recibe eventos de su local; un admin recibe todos.
	role := GetRole(c)
	localFilter := ""
	if role != "" && role != entity.RoleAdmin {
		localFilter = GetLocalID(c)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events := h.feed.Subscribe(ctx)
		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				if localFilter != "" && event.LocalID != localFilter {
					continue
				}
				payload, err := json.Marshal(event)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: sale\ndata: %s\n\n", payload)
				if err := w.Flush(); err != nil {
					// Cliente desconectado: cancelar libera la suscripción.
					return
				}
			case <-ticker.C:
				fmt.Fprint(w, ": keepalive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}
