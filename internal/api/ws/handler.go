package ws

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/navkit/navd/internal/domain/registry"
	"github.com/navkit/navd/internal/domain/rendezvous"
	"github.com/navkit/navd/internal/domain/stack"
	"github.com/navkit/navd/internal/infrastructure/logging"
	"github.com/navkit/navd/internal/infrastructure/monitoring"
	"github.com/navkit/navd/internal/shared/types"
)

// outboundBuffer bounds the per-connection send queue. A full queue means
// the client cannot keep up with the snapshot stream and is disconnected.
const outboundBuffer = 256

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS policy is enforced by the HTTP middleware
	},
}

// Handler manages WebSocket connections
type Handler struct {
	stack      *stack.Manager
	rendezvous *rendezvous.Manager
	registry   *registry.Manager
	logger     *logging.Logger
	metrics    *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler
func NewHandler(stackMgr *stack.Manager, rz *rendezvous.Manager, reg *registry.Manager, logger *logging.Logger) *Handler {
	return &Handler{
		stack:      stackMgr,
		rendezvous: rz,
		registry:   reg,
		logger:     logger,
	}
}

// WithMetrics attaches a metrics collector
func (h *Handler) WithMetrics(metrics *monitoring.Metrics) *Handler {
	h.metrics = metrics
	return h
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	out := make(chan map[string]interface{}, outboundBuffer)

	// Writer goroutine owns the connection for writes
	go func() {
		for {
			select {
			case msg := <-out:
				if err := conn.WriteJSON(msg); err != nil {
					cancel()
					return
				}
				if h.metrics != nil {
					h.metrics.RecordWSMessage("out", msg["type"].(string))
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	h.send(ctx, out, map[string]interface{}{
		"type":    "system",
		"message": "connected to navd",
	})

	// Snapshot fan-in. The callback runs under the stack lock and must not
	// block: a full queue disconnects the client instead.
	subID := h.stack.Subscribe(func(s types.Snapshot) {
		select {
		case out <- h.snapshotMessage(s):
		default:
			h.logger.Warn("websocket client too slow, dropping connection")
			cancel()
		}
	})
	defer h.stack.Unsubscribe(subID)

	// Unblock the read loop when the writer or a slow-consumer drop cancels
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}
		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}

		switch msg.Type {
		case "push":
			if page, ok := h.page(ctx, out, msg); ok {
				h.stack.Push(page)
			}
		case "pop":
			didPop := h.stack.Pop()
			h.send(ctx, out, map[string]interface{}{
				"type":    "pop_result",
				"did_pop": didPop,
			})
		case "replace":
			if page, ok := h.page(ctx, out, msg); ok {
				h.stack.Replace(page)
			}
		case "reset":
			if page, ok := h.page(ctx, out, msg); ok {
				canceled := h.rendezvous.Cancel()
				h.stack.ReplaceAll(page)
				h.send(ctx, out, map[string]interface{}{
					"type":            "reset_result",
					"canceled_waiter": canceled,
				})
			}
		case "return":
			if msg.Value == nil {
				h.sendError(ctx, out, "return requires a value")
				continue
			}
			delivered, didPop := h.rendezvous.ReturnWith(*msg.Value)
			h.send(ctx, out, map[string]interface{}{
				"type":      "return_result",
				"delivered": delivered,
				"did_pop":   didPop,
			})
		case "wait_for_result":
			page, ok := h.page(ctx, out, msg)
			if !ok {
				continue
			}
			// Suspend in a dedicated goroutine; the read loop keeps going
			go h.waitForResult(ctx, out, page)
		case "ping":
			h.send(ctx, out, map[string]interface{}{"type": "pong"})
		default:
			h.sendError(ctx, out, "unknown message type")
		}
	}
}

// waitForResult runs one rendezvous and reports its outcome on the connection
func (h *Handler) waitForResult(ctx context.Context, out chan map[string]interface{}, page types.Page) {
	value, err := h.rendezvous.WaitForResult(ctx, page)

	msg := map[string]interface{}{
		"type":     "result",
		"page_key": page.Key(),
	}
	switch {
	case err == nil:
		msg["outcome"] = "resolved"
		msg["value"] = value
	case errors.Is(err, rendezvous.ErrSuperseded):
		msg["outcome"] = "superseded"
	case errors.Is(err, rendezvous.ErrCanceled):
		msg["outcome"] = "canceled"
	default:
		// Context gone: the connection is closing, nobody is listening
		return
	}

	h.send(ctx, out, msg)
}

func (h *Handler) snapshotMessage(s types.Snapshot) map[string]interface{} {
	msg := map[string]interface{}{
		"type":  "snapshot",
		"seq":   s.Seq,
		"pages": s.Pages,
	}
	if views, err := h.registry.RenderStack(s); err == nil {
		msg["views"] = views
	}
	return msg
}

// page decodes and validates the page field of a command
func (h *Handler) page(ctx context.Context, out chan map[string]interface{}, msg types.WSMessage) (types.Page, bool) {
	if msg.Page == nil {
		h.sendError(ctx, out, msg.Type+" requires a page")
		return types.Page{}, false
	}
	if err := msg.Page.Validate(); err != nil {
		h.sendError(ctx, out, err.Error())
		return types.Page{}, false
	}
	return *msg.Page, true
}

func (h *Handler) send(ctx context.Context, out chan map[string]interface{}, msg map[string]interface{}) {
	select {
	case out <- msg:
	case <-ctx.Done():
	}
}

func (h *Handler) sendError(ctx context.Context, out chan map[string]interface{}, message string) {
	h.send(ctx, out, map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}
