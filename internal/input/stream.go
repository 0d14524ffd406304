package input

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrInterrupted is returned by Stream.Run when the user pressed Ctrl+C or Ctrl+D.
var ErrInterrupted = errors.New("input: interrupted")

// DefaultHoldDuration is how long a key is considered held after its last byte.
const DefaultHoldDuration = 120 * time.Millisecond

// Stream feeds a Keyboard from a terminal byte stream.
// Terminals report presses (and auto-repeat) but never releases, so a key is
// released once no byte for it arrived within the hold duration.
type Stream struct {
	r        io.Reader
	kb       *Keyboard
	hold     time.Duration
	lastSeen map[string]time.Time
}

// NewStream creates a stream reading from r into kb.
func NewStream(r io.Reader, kb *Keyboard, hold time.Duration) *Stream {
	if hold <= 0 {
		hold = DefaultHoldDuration
	}
	return &Stream{
		r:        r,
		kb:       kb,
		hold:     hold,
		lastSeen: make(map[string]time.Time),
	}
}

// Run pumps input until ctx is cancelled, the reader fails or the user interrupts.
// Returns io.EOF when the reader is exhausted and ErrInterrupted on Ctrl+C.
func (s *Stream) Run(ctx context.Context) error {
	data := make(chan []byte, 128)
	readErr := make(chan error, 1)

	// The reader goroutine may outlive Run while blocked in Read; it exits
	// with the underlying reader.
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := s.r.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				select {
				case data <- chunk:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	ticker := time.NewTicker(s.hold / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case chunk := <-data:
			if s.apply(Decode(chunk), time.Now()) {
				return ErrInterrupted
			}
		case err := <-readErr:
			// Deliver anything read before the error
			for {
				select {
				case chunk := <-data:
					if s.apply(Decode(chunk), time.Now()) {
						return ErrInterrupted
					}
					continue
				default:
				}
				break
			}
			return err
		case now := <-ticker.C:
			s.expire(now)
		}
	}
}

// apply presses the decoded keys. Returns true if an interrupt was seen.
func (s *Stream) apply(keys []string, now time.Time) bool {
	for _, key := range keys {
		if key == KeyInterrupt {
			return true
		}
		s.lastSeen[key] = now
		s.kb.KeyDown(key)
	}
	return false
}

// expire releases keys that were not repeated within the hold duration.
func (s *Stream) expire(now time.Time) {
	for key, seen := range s.lastSeen {
		if now.Sub(seen) >= s.hold {
			s.kb.KeyUp(key)
			delete(s.lastSeen, key)
		}
	}
}
