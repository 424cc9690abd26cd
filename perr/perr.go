// Package perr defines the error taxonomy shared by every layer of the
// client: transport failures, framing faults, pod decode diagnostics,
// routing misses, and mailbox teardown.
//
// Low-level I/O failure is fatal and propagates through call sites as a
// wrapped error. Pod decode and routing errors are recoverable per-frame
// diagnostics: the reader logs them and keeps servicing the connection.
package perr

import "errors"

// Recoverable decode diagnostics.
var (
	ErrUnsupportedType    = errors.New("pod: unsupported type code")
	ErrInvalidType        = errors.New("pod: type mismatch")
	ErrPropertyMissing    = errors.New("pod: struct truncated, missing field")
	ErrPropertyWrongKey   = errors.New("pod: unexpected object property key")
	ErrInvalidChoiceType  = errors.New("pod: invalid choice type")
	ErrMissingChoiceValues = errors.New("pod: choice carries no values")
)

// Framing and routing errors.
var (
	ErrFrameTooShort  = errors.New("frame: declared size exceeds available body")
	ErrUnknownProxy   = errors.New("proxy: id not present in registry")
	ErrMailboxClosed  = errors.New("proxy: mailbox receiver dropped")
	ErrConnectionGone = errors.New("conn: write attempted on closed connection")
	ErrRateLimited    = errors.New("conn: outbound method rejected, rate limit exceeded")
)

// ParseError wraps a low-level framing or decode failure (usually one
// of the sentinels above) with the operation that surfaced it.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return "pod: " + e.Op + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError wraps err with the operation that surfaced it.
func NewParseError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Op: op, Err: err}
}

// ProxyGone is a diagnostic (not an error returned to any caller) emitted
// by the reader task when delivery to a mailbox fails because its
// receiver has been dropped.
type ProxyGone struct {
	ID int32
}

func (p *ProxyGone) Error() string {
	return "proxy gone: mailbox receiver for id dropped"
}

// RoutingMiss is a diagnostic emitted when an inbound header.id does not
// resolve to any known proxy kind.
type RoutingMiss struct {
	ID     int32
	Opcode uint8
}

func (r *RoutingMiss) Error() string {
	return "routing miss: no proxy registered for inbound id"
}
