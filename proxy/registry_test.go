package proxy

import (
	"testing"

	"pipewire-go-client/perr"
	"pipewire-go-client/pod"
	"pipewire-go-client/proto"
)

func echoDecoder(opcode uint8, payload pod.Value) (any, error) {
	return payload, nil
}

func TestAllocateStartsAtTwo(t *testing.T) {
	r := NewRegistry()
	first := r.Allocate(proto.KindRegistry, echoDecoder)
	second := r.Allocate(proto.KindNode, echoDecoder)
	if first.ID() != 2 {
		t.Fatalf("first allocated id = %d, want 2", first.ID())
	}
	if second.ID() != 3 {
		t.Fatalf("second allocated id = %d, want 3", second.ID())
	}
}

func TestBindCoreAndClientReservedIDs(t *testing.T) {
	r := NewRegistry()
	core := r.BindCore(echoDecoder)
	client := r.BindClient(echoDecoder)
	if core.ID() != proto.CoreObjectID {
		t.Fatalf("core id = %d, want %d", core.ID(), proto.CoreObjectID)
	}
	if client.ID() != proto.ClientObjectID {
		t.Fatalf("client id = %d, want %d", client.ID(), proto.ClientObjectID)
	}
	next := r.Allocate(proto.KindNode, echoDecoder)
	if next.ID() != 2 {
		t.Fatalf("first dynamic id = %d, want 2", next.ID())
	}
}

func TestDeliverRoutesToCorrectMailbox(t *testing.T) {
	r := NewRegistry()
	p := r.Allocate(proto.KindNode, echoDecoder)
	want := pod.Int(42)

	if err := r.Deliver(p.ID(), 0, want); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	select {
	case got := <-p.Events():
		if got.(pod.Value).IntVal != 42 {
			t.Fatalf("got %v, want 42", got)
		}
	default:
		t.Fatal("expected event on mailbox, got none")
	}
}

func TestDeliverUnknownIDIsRoutingMiss(t *testing.T) {
	r := NewRegistry()
	err := r.Deliver(99, 0, pod.None())
	var miss *perr.RoutingMiss
	if err == nil {
		t.Fatal("expected RoutingMiss, got nil")
	}
	if !asRoutingMiss(err, &miss) {
		t.Fatalf("expected *perr.RoutingMiss, got %T: %v", err, err)
	}
}

func asRoutingMiss(err error, target **perr.RoutingMiss) bool {
	m, ok := err.(*perr.RoutingMiss)
	if ok {
		*target = m
	}
	return ok
}

func TestDropRemovesEntryAndStopsDelivery(t *testing.T) {
	r := NewRegistry()
	p := r.Allocate(proto.KindRegistry, echoDecoder)
	id := p.ID()

	p.Close()

	if r.Len() != 0 {
		t.Fatalf("registry still has %d entries after drop", r.Len())
	}

	err := r.Deliver(id, 0, pod.None())
	if _, ok := err.(*perr.RoutingMiss); !ok {
		t.Fatalf("expected RoutingMiss after drop, got %T: %v", err, err)
	}
}

func TestFanOutDoneDeliversMarker(t *testing.T) {
	r := NewRegistry()
	p := r.Allocate(proto.KindRegistry, echoDecoder)

	r.FanOutDone(p.ID())

	select {
	case ev := <-p.Events():
		if d, ok := ev.(Done); !ok || d.ID != p.ID() {
			t.Fatalf("got %#v, want Done{ID: %d}", ev, p.ID())
		}
	default:
		t.Fatal("expected Done marker on mailbox")
	}
}

func TestFanOutDoneUnknownIDIsIgnored(t *testing.T) {
	r := NewRegistry()
	r.FanOutDone(12345)
}
