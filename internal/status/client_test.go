package status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mc-control-bot/internal/server"
)

func testTarget(url string) server.Server {
	return server.Server{ID: server.Modern, Label: "ATM10", StatusURL: url}
}

func TestFetch_ParsesPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"description":"ATM10 server","version":{"name":"1.21"},"players":{"online":2,"max":20,"sample":[{"name":"alex"},{"name":"steve"}]},"server":{"latency":34}}`))
	}))
	defer ts.Close()

	c := NewHTTPClient(2 * time.Second)
	resp, err := c.Fetch(context.Background(), testTarget(ts.URL))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if resp.Version == nil || resp.Version.Name != "1.21" {
		t.Fatalf("version not parsed: %+v", resp.Version)
	}
	if resp.Players == nil || resp.Players.Online != 2 || len(resp.Players.Sample) != 2 {
		t.Fatalf("players not parsed: %+v", resp.Players)
	}
}

func TestFetch_MalformedPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>nope</html>`))
	}))
	defer ts.Close()

	c := NewHTTPClient(2 * time.Second)
	_, err := c.Fetch(context.Background(), testTarget(ts.URL))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestFetch_Non200IsUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewHTTPClient(2 * time.Second)
	_, err := c.Fetch(context.Background(), testTarget(ts.URL))
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestFetch_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	c := NewHTTPClient(20 * time.Millisecond)
	_, err := c.Fetch(context.Background(), testTarget(ts.URL))
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}
