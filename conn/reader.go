package conn

import (
	"errors"
	"io"
	"log"

	"pipewire-go-client/frame"
	"pipewire-go-client/perr"
	"pipewire-go-client/pod"
	"pipewire-go-client/proto"
	"pipewire-go-client/proxy"
)

// Reader is the connection's single background read loop: parse a
// frame, decode its body, fan out a Done marker if it's Core's, then
// hand the decoded event to the registry for delivery to the matching
// proxy's mailbox. Only one Reader runs per connection; reads are
// strictly sequential so frame boundaries can never be corrupted by
// concurrent consumption.
type Reader struct {
	r        io.Reader
	registry *proxy.Registry
	logger   *log.Logger
}

// NewReader returns a Reader over r. A nil logger falls back to the
// standard library's default logger.
func NewReader(r io.Reader, registry *proxy.Registry, logger *log.Logger) *Reader {
	if logger == nil {
		logger = log.Default()
	}
	return &Reader{r: r, registry: registry, logger: logger}
}

// Run drives the read loop until the transport fails or closes. A
// clean io.EOF at a frame boundary ends the loop with a single
// "connection closed by peer" log line; anything
// else (including io.ErrUnexpectedEOF from a frame cut off mid-read)
// is a fatal transport error, logged before returning.
func (rd *Reader) Run() {
	for {
		header, body, err := frame.ReadFrame(rd.r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				rd.logger.Printf("conn: connection closed by peer")
			} else {
				rd.logger.Printf("conn: transport failure, reader exiting: %v", err)
			}
			return
		}

		payload, _, err := pod.Decode(body)
		if err != nil {
			rd.logger.Printf("conn: malformed frame id=%d opcode=%d: %v", header.ID, header.Opcode, err)
			continue
		}

		if header.ID == proto.CoreObjectID && header.Opcode == proto.CoreEventDone {
			rd.fanOutDone(payload)
		}

		if err := rd.registry.Deliver(header.ID, header.Opcode, payload); err != nil {
			rd.logDeliveryFailure(header, err)
		}
	}
}

// fanOutDone decodes a Core.Done event and, per the Done fan-out
// convention, pushes a Done marker onto the mailbox of the proxy it
// names, before the event itself reaches the Core mailbox.
func (rd *Reader) fanOutDone(payload pod.Value) {
	done, err := proto.DecodeDoneEvent(payload)
	if err != nil {
		rd.logger.Printf("conn: malformed Core.Done event: %v", err)
		return
	}
	rd.registry.FanOutDone(done.ID)
}

func (rd *Reader) logDeliveryFailure(header frame.Header, err error) {
	var gone *perr.ProxyGone
	var miss *perr.RoutingMiss
	switch {
	case errors.As(err, &gone):
		rd.logger.Printf("conn: proxy gone, dropping event id=%d opcode=%d", header.ID, header.Opcode)
	case errors.As(err, &miss):
		rd.logger.Printf("conn: routing miss, no proxy for id=%d opcode=%d", header.ID, header.Opcode)
	default:
		rd.logger.Printf("conn: delivery error id=%d opcode=%d: %v", header.ID, header.Opcode, err)
	}
}
