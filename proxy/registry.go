// Package proxy implements the client-side proxy table: id allocation,
// per-kind event routing, bounded mailboxes, and the Done fan-out
// convention that lets a proxy observe its own sync barrier.
//
// The table is the read path's single source of truth for "who gets
// this frame": a reader task decodes a frame's body into a pod value
// and hands it with the opcode to Deliver, which looks the destination
// up by id, decodes it into a typed event through the entry's own
// decode table, and pushes onto that proxy's mailbox. Everything here is guarded by one mutex with a
// strictly short critical section; the blocking mailbox send that
// provides backpressure always happens after the lock is released.
package proxy

import (
	"sync"

	"pipewire-go-client/perr"
	"pipewire-go-client/pod"
	"pipewire-go-client/proto"
)

// mailboxCapacity is the bounded queue depth for every proxy's event
// channel. A full mailbox makes Deliver block, applying backpressure
// to the reader task without affecting other proxies' independent
// mailboxes.
const mailboxCapacity = 8

// EventDecoder turns one frame's (opcode, payload) into the decoded
// event value a proxy's mailbox carries. Each interface in proto owns
// its own opcode→event mapping; Registry never interprets opcodes
// itself, it only routes to the entry whose decoder knows how.
type EventDecoder func(opcode uint8, payload pod.Value) (any, error)

// Done is the kind-specific barrier marker fanned out to a proxy whose
// id matches an inbound Core.Done event, ahead of (and independent of)
// delivery of the Done event itself to the Core mailbox.
type Done struct {
	ID int32
}

type entry struct {
	kind    proto.Kind
	decode  EventDecoder
	mailbox chan any
	closed  chan struct{}
}

// Registry is the process-wide-per-connection id→(kind, mailbox)
// table. The zero value is not usable; construct with NewRegistry.
type Registry struct {
	mu      sync.Mutex
	nextID  int32
	entries map[int32]*entry
}

// NewRegistry returns an empty registry whose allocator starts handing
// out ids at 2 (0 and 1 are reserved for Core and Client).
func NewRegistry() *Registry {
	return &Registry{
		nextID:  2,
		entries: make(map[int32]*entry),
	}
}

func newEntry(kind proto.Kind, decode EventDecoder) *entry {
	return &entry{
		kind:    kind,
		decode:  decode,
		mailbox: make(chan any, mailboxCapacity),
		closed:  make(chan struct{}),
	}
}

// bind inserts an entry at a caller-chosen id, used for the two
// reserved ids synthesized at connection time.
func (r *Registry) bind(id int32, kind proto.Kind, decode EventDecoder) *Proxy {
	e := newEntry(kind, decode)
	r.mu.Lock()
	r.entries[id] = e
	r.mu.Unlock()
	return &Proxy{id: id, kind: kind, registry: r, entry: e}
}

// BindCore installs the implicit Core proxy at id 0.
func (r *Registry) BindCore(decode EventDecoder) *Proxy {
	return r.bind(proto.CoreObjectID, proto.KindCore, decode)
}

// BindClient installs the implicit Client proxy at id 1.
func (r *Registry) BindClient(decode EventDecoder) *Proxy {
	return r.bind(proto.ClientObjectID, proto.KindClient, decode)
}

// Allocate reserves the next free id and installs an entry for it,
// returning the new Proxy. Callers pass the returned id to the
// server-side creating method (GetRegistry's new_id, Bind's new_id,
// CreateObject's new_id) in the same call that triggers allocation.
func (r *Registry) Allocate(kind proto.Kind, decode EventDecoder) *Proxy {
	e := newEntry(kind, decode)
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.entries[id] = e
	r.mu.Unlock()
	return &Proxy{id: id, kind: kind, registry: r, entry: e}
}

// Deliver routes one decoded frame to the proxy registered for id. An
// id with no entry is a routable-but-unhandled condition, not fatal:
// it's reported back to the reader as a RoutingMiss diagnostic.
func (r *Registry) Deliver(id int32, opcode uint8, payload pod.Value) error {
	r.mu.Lock()
	e, ok := r.entries[id]
	r.mu.Unlock()
	if !ok {
		return &perr.RoutingMiss{ID: id, Opcode: opcode}
	}

	ev, err := e.decode(opcode, payload)
	if err != nil {
		return perr.NewParseError("deliver", err)
	}

	select {
	case e.mailbox <- ev:
		return nil
	case <-e.closed:
		return &perr.ProxyGone{ID: id}
	}
}

// FanOutDone delivers a Done marker to the proxy named by targetID,
// ahead of the Done event's own delivery to the Core mailbox. An
// unknown or already-dropped targetID is silently ignored, per the
// client-side convention that Done.id is a hint, not a guarantee.
func (r *Registry) FanOutDone(targetID int32) {
	r.mu.Lock()
	e, ok := r.entries[targetID]
	r.mu.Unlock()
	if !ok {
		return
	}
	select {
	case e.mailbox <- Done{ID: targetID}:
	case <-e.closed:
	}
}

// drop removes id's entry and closes its closed-signal channel,
// unblocking any in-flight Deliver/FanOutDone and ensuring no further
// delivery is attempted for id.
func (r *Registry) drop(id int32) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
	}
	r.mu.Unlock()
	if ok {
		close(e.closed)
	}
}

// Len reports how many proxies are currently registered, for tests.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
