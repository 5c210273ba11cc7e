package http

import (
	"context"
	stdhttp "net/http"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/wishwall-server/internal/proto"
)

// dialAndSync opens a WebSocket connection and waits for a pong, which
// guarantees the connection has been admitted to the registry.
func dialAndSync(ctx context.Context, t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("ws dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })

	if err := wsjson.Write(ctx, conn, proto.Inbound{Action: "ping"}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	var out proto.Outbound
	if err := wsjson.Read(ctx, conn, &out); err != nil {
		t.Fatalf("read pong: %v", err)
	}
	if out.Action != "pong" {
		t.Fatalf("expected pong, got %+v", out)
	}

	return conn
}

func readOutbound(ctx context.Context, t *testing.T, conn *websocket.Conn) proto.Outbound {
	t.Helper()

	var out proto.Outbound
	if err := wsjson.Read(ctx, conn, &out); err != nil {
		t.Fatalf("read outbound: %v", err)
	}
	return out
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := startTestServer(t, testConfig())

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestWebSocketPingPong(t *testing.T) {
	ts, _ := startTestServer(t, testConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// dialAndSync already performs one ping/pong round trip; a second
	// probe must be answered as well.
	conn := dialAndSync(ctx, t, wsURL(ts))

	if err := wsjson.Write(ctx, conn, proto.Inbound{Action: "ping"}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	out := readOutbound(ctx, t, conn)
	if out.Action != "pong" {
		t.Fatalf("expected pong, got %+v", out)
	}
}

func TestWebSocketUnknownActionIgnored(t *testing.T) {
	ts, _ := startTestServer(t, testConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialAndSync(ctx, t, wsURL(ts))

	if err := wsjson.Write(ctx, conn, proto.Inbound{Action: "shout"}); err != nil {
		t.Fatalf("write unknown action: %v", err)
	}

	// The connection must stay usable.
	if err := wsjson.Write(ctx, conn, proto.Inbound{Action: "ping"}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	out := readOutbound(ctx, t, conn)
	if out.Action != "pong" {
		t.Fatalf("expected pong, got %+v", out)
	}
}

func TestWishLifecycleFanout(t *testing.T) {
	ts, _ := startTestServer(t, testConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	connA := dialAndSync(ctx, t, wsURL(ts))
	connB := dialAndSync(ctx, t, wsURL(ts))

	// Add a wish over REST; both live connections must see new_wish.
	resp, err := ts.Client().Post(ts.URL+"/api/wishes", "application/json",
		jsonBody(t, AddWishRequest{Name: "Ada", Message: "Congrats!", Password: "secret1"}))
	if err != nil {
		t.Fatalf("add wish request failed: %v", err)
	}
	var created proto.Wish
	decodeJSON(t, resp, stdhttp.StatusCreated, &created)

	for _, conn := range []*websocket.Conn{connA, connB} {
		out := readOutbound(ctx, t, conn)
		if out.Action != "new_wish" || out.Wish == nil || out.Wish.ID != created.ID {
			t.Fatalf("unexpected fanout payload: %+v", out)
		}
		if out.Wish.Name != "Ada" || out.Wish.Message != "Congrats!" {
			t.Fatalf("unexpected wish payload: %+v", out.Wish)
		}
	}

	// Wrong password must not delete or broadcast.
	resp = doDelete(t, ts, created.ID, "wrong")
	if resp.StatusCode != stdhttp.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Correct password deletes; both connections see delete_wish.
	resp = doDelete(t, ts, created.ID, "secret1")
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	for _, conn := range []*websocket.Conn{connA, connB} {
		out := readOutbound(ctx, t, conn)
		if out.Action != "delete_wish" || out.ID != created.ID {
			t.Fatalf("unexpected delete fanout: %+v", out)
		}
	}

	// A fresh full read no longer contains the wish.
	listResp, err := ts.Client().Get(ts.URL + "/api/wishes")
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	var wishes []proto.Wish
	decodeJSON(t, listResp, stdhttp.StatusOK, &wishes)
	if len(wishes) != 0 {
		t.Fatalf("expected empty list, got %+v", wishes)
	}
}
