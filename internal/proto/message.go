package proto

import "github.com/vovakirdan/wishwall-server/internal/core"

// WireDateFormat is how wish timestamps are rendered on the wire.
const WireDateFormat = "02/01/2006, 15:04"

// InboundActionPing is the liveness probe clients send over the
// WebSocket; anything else is ignored.
const InboundActionPing = "ping"

// Inbound is the envelope for messages coming from a client connection.
type Inbound struct {
	Action string `json:"action"`
}

// Wish is the wire projection of a wish record.
type Wish struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

// Outbound is the envelope pushed to client connections. The action
// strings are shared with the core event tags.
type Outbound struct {
	Action string `json:"action"`
	Wish   *Wish  `json:"wish,omitempty"`
	ID     string `json:"id,omitempty"`
}

// WishFromView converts a core projection to its wire shape.
func WishFromView(v core.View) Wish {
	return Wish{
		ID:      v.ID,
		Name:    v.Name,
		Message: v.Message,
		Date:    v.CreatedAt.Format(WireDateFormat),
	}
}

// OutboundFromEvent converts a broadcast event to its wire envelope.
func OutboundFromEvent(ev *core.Event) Outbound {
	out := Outbound{Action: ev.Action}
	switch ev.Action {
	case core.ActionNewWish:
		if ev.Wish != nil {
			wish := WishFromView(*ev.Wish)
			out.Wish = &wish
		}
	case core.ActionDeleteWish:
		out.ID = ev.ID
	}
	return out
}
