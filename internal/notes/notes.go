// Package notes is the speaker-notes event channel: one dais instance
// publishes slide changes as JSON datagrams over loopback UDP and
// another follows them. Delivery is best effort and unacknowledged; a
// dropped event only means the follower catches up on the next one, so
// transport errors are logged, never raised.
package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"dais/internal/logging"
)

// event is the wire format. Slide numbers are 1-based.
type event struct {
	GoToSlide int `json:"go_to_slide"`
}

// Publisher sends slide-change events.
type Publisher struct {
	conn net.Conn
}

// NewPublisher connects to the listener address.
func NewPublisher(addr string) (*Publisher, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to open notes channel: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

// GoToSlide publishes the current 1-based slide number. Failures are
// logged and dropped.
func (p *Publisher) GoToSlide(slide int) {
	payload, err := json.Marshal(event{GoToSlide: slide})
	if err != nil {
		logging.Warn("failed to encode notes event", "error", err)
		return
	}
	if _, err := p.conn.Write(payload); err != nil {
		logging.Warn("failed to publish notes event", "error", err)
	}
}

// Close releases the channel.
func (p *Publisher) Close() error {
	return p.conn.Close()
}

// Listener receives slide-change events. A goroutine reads datagrams
// into a one-slot latest-wins buffer; TryRecv is non-blocking, so a
// slow consumer only ever sees the most recent event.
type Listener struct {
	conn   *net.UDPConn
	latest chan int
}

// NewListener binds the listener address and starts receiving.
func NewListener(addr string) (*Listener, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("invalid notes address: %w", err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen for notes events: %w", err)
	}

	l := &Listener{conn: conn, latest: make(chan int, 1)}
	go l.receive()
	return l, nil
}

// Addr returns the bound address, useful when listening on port 0.
func (l *Listener) Addr() string {
	return l.conn.LocalAddr().String()
}

func (l *Listener) receive() {
	buf := make([]byte, 512)
	for {
		n, err := l.conn.Read(buf)
		if err != nil {
			// Closed connection ends the goroutine quietly; anything
			// else still ends it, but is worth a log line.
			if !errors.Is(err, net.ErrClosed) {
				logging.Warn("failed to read notes event", "error", err)
			}
			return
		}

		var ev event
		if err := json.Unmarshal(buf[:n], &ev); err != nil {
			logging.Warn("ignoring malformed notes event", "error", err)
			continue
		}
		if ev.GoToSlide < 1 {
			logging.Warn("ignoring notes event with bad slide", "slide", ev.GoToSlide)
			continue
		}

		// Latest wins: drop the stale pending event, if any.
		select {
		case <-l.latest:
		default:
		}
		l.latest <- ev.GoToSlide
	}
}

// TryRecv returns the latest pending slide number without blocking.
func (l *Listener) TryRecv() (int, bool) {
	select {
	case slide := <-l.latest:
		return slide, true
	default:
		return 0, false
	}
}

// Close stops the listener.
func (l *Listener) Close() error {
	return l.conn.Close()
}
