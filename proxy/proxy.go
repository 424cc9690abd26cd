package proxy

import "pipewire-go-client/proto"

// Caller is the minimal surface a Proxy needs from the connection's
// shared writer to invoke a method on itself; conn.Writer satisfies
// this without proxy importing conn (which would create a cycle).
type Caller interface {
	CallMethod(id int32, opcode uint8, payload []byte) error
}

// Proxy is the client-side handle to one remote object: its id, the
// interface it was bound as, and the mailbox its events arrive on. A
// Proxy never references another Proxy directly; the only shared state
// it holds is the registry it was allocated from and, once attached,
// the connection's writer.
type Proxy struct {
	id       int32
	kind     proto.Kind
	registry *Registry
	entry    *entry
	writer   Caller
}

// ID returns the proxy's object id.
func (p *Proxy) ID() int32 { return p.id }

// Kind returns the interface this proxy was bound as.
func (p *Proxy) Kind() proto.Kind { return p.kind }

// Attach records the writer used to invoke methods on this proxy.
// Registry binding and allocation take no writer, so every proxy is
// attached separately once it has been bound or allocated.
func (p *Proxy) Attach(w Caller) { p.writer = w }

// Call invokes a method on this proxy's remote object.
func (p *Proxy) Call(opcode uint8, payload []byte) error {
	return p.writer.CallMethod(p.id, opcode, payload)
}

// Events returns the channel this proxy's decoded events (and, for a
// proxy that issued Sync, Done markers) arrive on.
func (p *Proxy) Events() <-chan any { return p.entry.mailbox }

// Close drops the proxy: its entry is removed from the registry so no
// further event is routed to it, and any in-flight delivery unblocks
// immediately instead of waiting on a mailbox nobody will ever drain
// again.
func (p *Proxy) Close() {
	p.registry.drop(p.id)
}
