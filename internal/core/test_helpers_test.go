package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wishwall-server/internal/store"
)

func nopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func mustEvent(t *testing.T, c *Conn, action string) *Event {
	t.Helper()

	select {
	case ev := <-c.Events():
		if ev == nil || ev.Action != action {
			t.Fatalf("expected %q event, got %+v", action, ev)
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("expected %q event not received", action)
		return nil
	}
}

func mustNoEvent(t *testing.T, c *Conn) {
	t.Helper()

	select {
	case ev := <-c.Events():
		t.Fatalf("unexpected event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

// memStore is an in-memory store.Store with failure injection.
type memStore struct {
	mu     sync.Mutex
	wishes []*store.Wish

	conflicts int // inserts to fail with ErrConflict before succeeding
	insertErr error
	findErr   error
	deleteErr error
	listErr   error
}

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) ListAll(_ context.Context) ([]*store.Wish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	// Newest first: wishes are appended in insertion order.
	out := make([]*store.Wish, 0, len(m.wishes))
	for i := len(m.wishes) - 1; i >= 0; i-- {
		out = append(out, m.wishes[i])
	}
	return out, nil
}

func (m *memStore) Insert(_ context.Context, wish *store.Wish) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	if m.conflicts > 0 {
		m.conflicts--
		return store.ErrConflict
	}
	for _, w := range m.wishes {
		if w.ID == wish.ID {
			return store.ErrConflict
		}
	}
	copied := *wish
	m.wishes = append(m.wishes, &copied)
	return nil
}

func (m *memStore) FindByID(_ context.Context, id string) (*store.Wish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, w := range m.wishes {
		if w.ID == id {
			copied := *w
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, w := range m.wishes {
		if w.ID == id {
			m.wishes = append(m.wishes[:i], m.wishes[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memStore) Close() error {
	return nil
}
