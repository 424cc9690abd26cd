package frame

import (
	"fmt"
	"io"

	"pipewire-go-client/perr"
)

// DefaultMaxBodySize caps the body size this decoder is willing to
// buffer before decoding. It is a policy choice (well under the 24-bit
// wire maximum of ~16 MiB) that lets the decoder recognize a server
// bug that declared an implausible size without blocking indefinitely
// on a socket that will never deliver that many bytes.
const DefaultMaxBodySize = 1 << 20

// Frame is one fully decoded header + body pair.
type Frame struct {
	Header Header
	Body   []byte
}

// Decoder accumulates bytes read off the wire and yields whole frames.
// It never decodes until header and body are both fully buffered: Feed
// appends bytes, Next pops frames one at a time.
type Decoder struct {
	buf         []byte
	maxBodySize uint32
}

// NewDecoder returns a Decoder with the default body-size cap.
func NewDecoder() *Decoder {
	return &Decoder{maxBodySize: DefaultMaxBodySize}
}

// SetMaxBodySize overrides the body-size sanity cap.
func (d *Decoder) SetMaxBodySize(n uint32) { d.maxBodySize = n }

// Feed appends newly read bytes to the internal buffer.
func (d *Decoder) Feed(chunk []byte) {
	d.buf = append(d.buf, chunk...)
}

// Next pops one frame from the buffer if a complete frame is available.
// It returns (nil, nil) when more bytes must be Fed before a frame can
// be decoded. A non-nil error is a per-frame framing diagnostic: the
// oversized frame's declared bytes are skipped so the decoder resyncs
// on the next header, and the caller should log and continue rather
// than treat it as fatal.
func (d *Decoder) Next() (*Frame, error) {
	if len(d.buf) < HeaderSize {
		return nil, nil
	}
	h, err := Unpack(d.buf)
	if err != nil {
		return nil, err
	}

	if h.Size > d.maxBodySize {
		d.resync(h.Size)
		return nil, fmt.Errorf("frame: declared body size %d exceeds cap %d: %w", h.Size, d.maxBodySize, perr.ErrFrameTooShort)
	}

	total := HeaderSize + int(h.Size)
	if len(d.buf) < total {
		return nil, nil
	}

	body := make([]byte, h.Size)
	copy(body, d.buf[HeaderSize:total])
	d.buf = d.buf[total:]
	return &Frame{Header: h, Body: body}, nil
}

// resync drops the declared body size worth of bytes (if present) so a
// malformed-but-bounded frame doesn't permanently desynchronize the
// stream. If fewer bytes than declared are currently buffered, the
// whole buffer is dropped; bytes arriving later are presumed to belong
// to a frame the server never actually intended to send at this
// length, which is the best this decoder can do without a resync token
// in the wire format.
func (d *Decoder) resync(declaredSize uint32) {
	total := HeaderSize + int(declaredSize)
	if total <= len(d.buf) {
		d.buf = d.buf[total:]
		return
	}
	d.buf = d.buf[:0]
}

// ReadFrame reads exactly one frame from r using blocking reads,
// suitable for a reader task driven directly off a socket where Feed
// would otherwise need a read loop of its own. io.EOF returned with
// zero bytes consumed means the stream ended cleanly at a frame
// boundary; io.ErrUnexpectedEOF means it ended mid-frame, a fatal
// transport condition.
func ReadFrame(r io.Reader) (Header, []byte, error) {
	var hbuf [HeaderSize]byte
	if _, err := io.ReadFull(r, hbuf[:]); err != nil {
		return Header{}, nil, err
	}
	h, err := Unpack(hbuf[:])
	if err != nil {
		return Header{}, nil, err
	}
	body := make([]byte, h.Size)
	if h.Size > 0 {
		if _, err := io.ReadFull(r, body); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return Header{}, nil, err
		}
	}
	return h, body, nil
}
