package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wishwall-server/internal/core"
	"github.com/vovakirdan/wishwall-server/internal/proto"
)

// errConnSaturated tears down a connection whose send queue cannot even
// take a pong; the peer reconnects and resyncs.
var errConnSaturated = errors.New("connection send queue saturated")

// WSHandler upgrades HTTP connections and bridges them to the broadcast
// registry.
type WSHandler struct {
	registry *core.Registry
	log      *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(registry *core.Registry, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{registry: registry, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer ws.Close(websocket.StatusInternalError, "internal error")

	conn := h.registry.Admit()
	defer h.registry.Remove(conn)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, ws, conn)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, ws, conn)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != -1 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("conn_id", conn.ID()).Msg("ws connection closed with error")
		}
	}

	ws.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, ws *websocket.Conn, conn *core.Conn) error {
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, ws, &inbound); err != nil {
			return err
		}

		switch inbound.Action {
		case proto.InboundActionPing:
			// Answered through the connection's own queue so socket
			// writes stay serialized on the write loop.
			if !conn.Send(core.PongEvent()) {
				return errConnSaturated
			}
		default:
			h.log.Debug().Str("conn_id", conn.ID()).Str("action", inbound.Action).Msg("ignoring unknown ws action")
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, ws *websocket.Conn, conn *core.Conn) error {
	for {
		select {
		case ev := <-conn.Events():
			if err := wsjson.Write(ctx, ws, proto.OutboundFromEvent(ev)); err != nil {
				h.log.Warn().Err(err).Str("conn_id", conn.ID()).Msg("write ws event")
				return err
			}
		case <-conn.Done():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
