package rcon

import (
	"errors"
	"fmt"
	"net"
	"time"

	gorcon "github.com/gorcon/rcon"

	"mc-control-bot/internal/server"
)

// Classified failures of a remote-console call.
var (
	ErrAuthFailed  = errors.New("rcon: authentication failed")
	ErrTimeout     = errors.New("rcon: timed out")
	ErrUnreachable = errors.New("rcon: server unreachable")
)

// Client runs a single console line against a backend server.
type Client interface {
	Command(target server.Server, line string) error
}

// Dialer opens a fresh authenticated connection per command. Dial and
// execution are both bounded by the configured timeout.
type Dialer struct {
	timeout time.Duration
}

func NewDialer(timeout time.Duration) *Dialer {
	return &Dialer{timeout: timeout}
}

func (d *Dialer) Command(target server.Server, line string) error {
	conn, err := gorcon.Dial(
		target.RconAddr,
		target.RconPassword,
		gorcon.SetDialTimeout(d.timeout),
		gorcon.SetDeadline(d.timeout),
	)
	if err != nil {
		return classify(err)
	}
	defer conn.Close()

	if _, err := conn.Execute(line); err != nil {
		return classify(err)
	}
	return nil
}

func classify(err error) error {
	if errors.Is(err, gorcon.ErrAuthFailed) || errors.Is(err, gorcon.ErrInvalidAuthResponse) {
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}
