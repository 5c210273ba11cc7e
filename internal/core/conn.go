package core

import "sync"

// Conn is one live client channel, owned by the Registry. A transport
// drains Events and writes each one to its peer; everything else about
// the connection's lifecycle belongs to the registry.
type Conn struct {
	id     string
	events chan *Event

	once sync.Once
	done chan struct{}
}

func newConn(id string, buffer int) *Conn {
	return &Conn{
		id:     id,
		events: make(chan *Event, buffer),
		done:   make(chan struct{}),
	}
}

// ID identifies the connection in logs.
func (c *Conn) ID() string {
	return c.id
}

// Events is the queue the transport drains towards the peer.
func (c *Conn) Events() <-chan *Event {
	return c.events
}

// Done is closed when the registry removes the connection.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Send enqueues an event without blocking. It reports false when the
// connection is closed or its queue is full.
func (c *Conn) Send(ev *Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.events <- ev:
		return true
	default:
		return false
	}
}

func (c *Conn) close() {
	c.once.Do(func() {
		close(c.done)
	})
}
