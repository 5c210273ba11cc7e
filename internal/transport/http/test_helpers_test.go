package http

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wishwall-server/internal/config"
	"github.com/vovakirdan/wishwall-server/internal/core"
	"github.com/vovakirdan/wishwall-server/internal/store/sqlite"
)

func testConfig() config.Config {
	return config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
		WSSendBuffer:      8,
	}
}

func nopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

// startTestServer wires an in-memory store through the real service and
// registry behind an httptest server.
func startTestServer(t *testing.T, cfg config.Config) (*httptest.Server, *core.Registry) {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger := nopLogger()
	registry := core.NewRegistry(cfg.WSSendBuffer, logger)
	service := core.NewService(st, registry, logger)

	server := NewServer(service, registry, cfg, logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, registry
}

func wsURL(ts *httptest.Server) string {
	return strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
}

func jsonBody(t *testing.T, payload any) *bytes.Reader {
	t.Helper()

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(data)
}

func doDelete(t *testing.T, ts *httptest.Server, id, password string) *stdhttp.Response {
	t.Helper()

	req, err := stdhttp.NewRequest(stdhttp.MethodDelete, ts.URL+"/api/wishes/"+id,
		jsonBody(t, DeleteWishRequest{Password: password}))
	if err != nil {
		t.Fatalf("build delete request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("delete request failed: %v", err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *stdhttp.Response, wantStatus int, v any) {
	t.Helper()
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("unexpected status: got %d, want %d", resp.StatusCode, wantStatus)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
