package server

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/disctl/internal/inspect"
	"github.com/danmuck/disctl/internal/protocol/pdu"
	"github.com/danmuck/disctl/internal/protocol/wire"
	"github.com/danmuck/disctl/internal/receiver"
	"github.com/danmuck/disctl/internal/testutil/testlog"
	"github.com/gin-gonic/gin"
)

func newTestInspector(t *testing.T, recent *inspect.Recent, stats func() receiver.Stats) *Inspector {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return New(Config{Addr: "127.0.0.1:0", Limits: wire.DefaultLimits()}, recent, nil, stats)
}

func do(t *testing.T, s *Inspector, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthAndMetrics(t *testing.T) {
	testlog.Start(t)

	s := newTestInspector(t, nil, nil)
	w := do(t, s, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health response %d %s", w.Code, w.Body.String())
	}

	w = do(t, s, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "disctl_http_requests_total") {
		t.Fatalf("expected http metrics exposed, got %d", w.Code)
	}
}

func TestTypesListsCatalogue(t *testing.T) {
	testlog.Start(t)

	s := newTestInspector(t, nil, nil)
	w := do(t, s, http.MethodGet, "/types", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	var resp struct {
		Types []typeEntry `json:"types"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Types) != len(pdu.DefaultRegistry().Types()) {
		t.Fatalf("expected %d types, got %d", len(pdu.DefaultRegistry().Types()), len(resp.Types))
	}
	if resp.Types[0].Name != "EntityState" || resp.Types[0].Family != "EntityInformation" {
		t.Fatalf("unexpected first entry %+v", resp.Types[0])
	}
}

func TestSampleRoute(t *testing.T) {
	testlog.Start(t)

	s := newTestInspector(t, nil, nil)
	w := do(t, s, http.MethodGet, "/types/Fire/sample", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Hex string `json:"hex"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Hex) != 96*2 {
		t.Fatalf("expected 96-byte fire pdu, got %d hex chars", len(resp.Hex))
	}

	if w := do(t, s, http.MethodGet, "/types/Nope/sample", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown name, got %d", w.Code)
	}
	if w := do(t, s, http.MethodGet, "/types/GriddedData/sample", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unregistered type, got %d", w.Code)
	}
}

func TestRecentFormats(t *testing.T) {
	testlog.Start(t)

	recent := inspect.NewRecent(8)
	for _, typ := range []pdu.Type{pdu.TypeFire, pdu.TypeDetonation} {
		p, err := pdu.SamplePdu(1, typ)
		if err != nil {
			t.Fatalf("sample: %v", err)
		}
		recent.Add(inspect.Summarize(p, "", "test", time.Now()))
	}
	s := newTestInspector(t, recent, nil)

	w := do(t, s, http.MethodGet, "/recent?limit=1", "")
	var resp struct {
		Count int               `json:"count"`
		Items []inspect.Summary `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 1 || resp.Items[0].Type != "Detonation" {
		t.Fatalf("expected newest detonation, got %+v", resp)
	}

	w = do(t, s, http.MethodGet, "/recent?format=text", "")
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Body.String(), "Detonation (Pdu)\n") {
		t.Fatalf("unexpected text body:\n%s", w.Body.String())
	}

	if w := do(t, s, http.MethodGet, "/recent?limit=-1", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", w.Code)
	}
	if w := do(t, s, http.MethodGet, "/recent?format=xml", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad format, got %d", w.Code)
	}
}

func TestStatsRoute(t *testing.T) {
	testlog.Start(t)

	if w := do(t, newTestInspector(t, nil, nil), http.MethodGet, "/stats", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without receiver, got %d", w.Code)
	}
	s := newTestInspector(t, nil, func() receiver.Stats { return receiver.Stats{Datagrams: 4, Pdus: 3} })
	w := do(t, s, http.MethodGet, "/stats", "")
	var got receiver.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Datagrams != 4 || got.Pdus != 3 {
		t.Fatalf("unexpected stats %+v", got)
	}
}

func TestDecodeRoute(t *testing.T) {
	testlog.Start(t)

	s := newTestInspector(t, nil, nil)
	p, err := pdu.SamplePdu(1, pdu.TypeStartResume)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	b, err := pdu.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	w := do(t, s, http.MethodPost, "/decode", string(b))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"type":"StartResume"`) {
		t.Fatalf("unexpected raw decode response %d %s", w.Code, w.Body.String())
	}

	w = do(t, s, http.MethodPost, "/decode?hex=true", hex.EncodeToString(b))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected hex decode response %d %s", w.Code, w.Body.String())
	}

	w = do(t, s, http.MethodPost, "/decode", string(b[:20]))
	if w.Code != http.StatusUnprocessableEntity || !strings.Contains(w.Body.String(), "truncated") {
		t.Fatalf("expected 422 for truncated pdu, got %d %s", w.Code, w.Body.String())
	}

	w = do(t, s, http.MethodPost, "/decode?hex=true", "zz")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad hex, got %d", w.Code)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	testlog.Start(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	gin.SetMode(gin.TestMode)
	s := New(Config{Addr: addr, ShutdownTimeout: time.Second}, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/health")
		if err == nil {
			_ = resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("inspector never came up: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("serve did not stop")
	}
}
