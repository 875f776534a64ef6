package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"mc-control-bot/internal/server"
)

var (
	ErrTimeout     = errors.New("status: timed out")
	ErrUnreachable = errors.New("status: server unreachable")
	ErrMalformed   = errors.New("status: malformed payload")
)

// Response is the status endpoint payload.
type Response struct {
	Description string   `json:"description"`
	Version     *Version `json:"version"`
	Players     *Players `json:"players"`
	Server      *Info    `json:"server"`
}

type Version struct {
	Name string `json:"name"`
}

type Players struct {
	Online int      `json:"online"`
	Max    int      `json:"max"`
	Sample []Player `json:"sample"`
}

type Player struct {
	Name string `json:"name"`
}

type Info struct {
	Latency int64 `json:"latency"`
}

// Client fetches the status payload of a backend server.
type Client interface {
	Fetch(ctx context.Context, target server.Server) (Response, error)
}

type HTTPClient struct {
	hc *http.Client
}

func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{hc: &http.Client{Timeout: timeout}}
}

func (c *HTTPClient) Fetch(ctx context.Context, target server.Server) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.StatusURL, nil)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return Response{}, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("%w: http %d", ErrUnreachable, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, classify(err)
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		// Payload detail stays in the log, never in chat.
		log.Printf("invalid status payload from %s (first 200 bytes): %q", target.ID, truncate(raw, 200))
		return Response{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return out, nil
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
