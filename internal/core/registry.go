package core

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultSendBuffer = 32

// Registry owns the set of live connections and fans broadcast events
// out to all of them. All access to the live set goes through its
// mutex, so Admit, Remove and Broadcast never observe a torn state.
type Registry struct {
	mu    sync.Mutex
	conns map[*Conn]struct{}

	buffer int
	log    *zerolog.Logger
}

// NewRegistry builds a registry whose connections queue up to buffer
// events each.
func NewRegistry(buffer int, logger *zerolog.Logger) *Registry {
	if buffer <= 0 {
		buffer = defaultSendBuffer
	}
	return &Registry{
		conns:  make(map[*Conn]struct{}),
		buffer: buffer,
		log:    logger,
	}
}

// Admit creates a connection handle and adds it to the live set. The
// connection is a broadcast target from this point on; it sees no
// events from before its admission and is expected to fetch the full
// wish list separately.
func (r *Registry) Admit() *Conn {
	c := newConn(uuid.NewString(), r.buffer)

	r.mu.Lock()
	r.conns[c] = struct{}{}
	live := len(r.conns)
	r.mu.Unlock()

	r.log.Debug().Str("conn_id", c.id).Int("live", live).Msg("connection admitted")
	return c
}

// Remove takes a connection out of the live set and closes it.
// Removing a connection that is already gone is a no-op, so a peer
// disconnect and a delivery failure may both remove the same handle.
func (r *Registry) Remove(c *Conn) {
	if c == nil {
		return
	}

	r.mu.Lock()
	_, present := r.conns[c]
	delete(r.conns, c)
	live := len(r.conns)
	r.mu.Unlock()

	c.close()

	if present {
		r.log.Debug().Str("conn_id", c.id).Int("live", live).Msg("connection removed")
	}
}

// Broadcast delivers ev to every live connection. Enqueueing never
// blocks, so the critical section stays short and a stalled consumer
// cannot delay the others; two sequential broadcasts are observed in
// issue order by every connection live across both. A connection that
// cannot accept the event (closed by the peer, or its queue saturated)
// is removed and will resync when it reconnects.
func (r *Registry) Broadcast(ev *Event) {
	var stale []*Conn

	r.mu.Lock()
	for c := range r.conns {
		if !c.Send(ev) {
			stale = append(stale, c)
		}
	}
	for _, c := range stale {
		delete(r.conns, c)
	}
	r.mu.Unlock()

	for _, c := range stale {
		c.close()
		r.log.Warn().Str("conn_id", c.id).Str("action", ev.Action).Msg("dropping unresponsive connection")
	}
}

// Len reports the number of live connections.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}
