package conn

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/time/rate"

	"pipewire-go-client/frame"
	"pipewire-go-client/perr"
)

// Writer is the single, lock-guarded sender shared by every proxy on a
// connection. CallMethod is atomic: header and body go out back to
// back under the same lock acquisition, so two concurrent callers can
// never interleave their frames on the wire.
//
// An optional token-bucket limiter rejects outbound calls once a
// misbehaving caller issues too many in too short a window.
type Writer struct {
	mu      sync.Mutex
	w       io.Writer
	seq     uint32
	limiter *rate.Limiter
}

// NewWriter wraps w, the write half of an established connection. The
// sequence counter starts at 0 and increments after each outbound
// method; echoed seq values from the server are opaque tokens, never a
// monotonic audit of this counter.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// SetRateLimit installs a token-bucket limiter: r tokens per second,
// up to burst tokens banked. Call before the connection starts issuing
// methods; there is no limiter by default.
func (w *Writer) SetRateLimit(r float64, burst int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.limiter = rate.NewLimiter(rate.Limit(r), burst)
}

// CallMethod serializes header+payload and writes them to the
// connection under the writer lock, then advances the sequence
// counter. Partial writes are treated as fatal I/O failure; there is
// no retry.
func (w *Writer) CallMethod(id int32, opcode uint8, payload []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.limiter != nil && !w.limiter.Allow() {
		return perr.ErrRateLimited
	}

	header, err := frame.Pack(frame.Header{
		ID:     id,
		Opcode: opcode,
		Size:   uint32(len(payload)),
		Seq:    w.seq,
	})
	if err != nil {
		return fmt.Errorf("conn: pack header: %w", err)
	}

	if _, err := w.w.Write(header[:]); err != nil {
		return fmt.Errorf("conn: write header: %w", err)
	}
	if len(payload) > 0 {
		if _, err := w.w.Write(payload); err != nil {
			return fmt.Errorf("conn: write body: %w", err)
		}
	}
	w.seq++
	return nil
}
