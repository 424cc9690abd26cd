package proto

import "pipewire-go-client/pod"

// Core method opcodes.
const (
	// CoreMethodAddListener is reserved (0); this client delivers every
	// inbound event unconditionally to a proxy's mailbox instead of
	// registering discrete listeners, so it is never sent.
	CoreMethodAddListener  uint8 = 0
	CoreMethodHello        uint8 = 1
	CoreMethodSync         uint8 = 2
	CoreMethodPong         uint8 = 3
	CoreMethodError        uint8 = 4
	CoreMethodGetRegistry  uint8 = 5
	CoreMethodCreateObject uint8 = 6
	CoreMethodDestroy      uint8 = 7
)

// Core event opcodes.
const (
	CoreEventInfo       uint8 = 0
	CoreEventDone       uint8 = 1
	CoreEventPing       uint8 = 2
	CoreEventError      uint8 = 3
	CoreEventRemoveID   uint8 = 4
	CoreEventBoundID    uint8 = 5
	CoreEventAddMem     uint8 = 6
	CoreEventRemoveMem  uint8 = 7
	CoreEventBoundProps uint8 = 8
)

// HelloMethod is the first message any connection MUST send.
type HelloMethod struct {
	Version int32
}

func (m HelloMethod) Encode() pod.Value {
	return pod.NewStructBuilder().Int(m.Version).Build()
}

// SyncMethod requests a Done echo once the server has processed
// everything up to this point for the named id.
type SyncMethod struct {
	ID  int32
	Seq uint32
}

func (m SyncMethod) Encode() pod.Value {
	return pod.NewStructBuilder().Int(m.ID).Int(int32(m.Seq)).Build()
}

// PongMethod answers a server Ping, echoing its id and seq.
type PongMethod struct {
	ID  int32
	Seq uint32
}

func (m PongMethod) Encode() pod.Value {
	return pod.NewStructBuilder().Int(m.ID).Int(int32(m.Seq)).Build()
}

// CoreErrorMethod and CoreErrorEvent share the same field shape but are
// kept as distinct types: the same (id, seq, res, message) record is
// Core.Error as an outbound method (opcode 4) and a separate Core.Error
// inbound event (opcode 3).
type CoreErrorMethod struct {
	ID      int32
	Seq     uint32
	Res     int32
	Message string
}

func (m CoreErrorMethod) Encode() pod.Value {
	return pod.NewStructBuilder().Int(m.ID).Int(int32(m.Seq)).Int(m.Res).String(m.Message).Build()
}

// GetRegistryMethod asks the server to bind a fresh Registry proxy at
// NewID, whose events this client will then route to that id.
type GetRegistryMethod struct {
	Version int32
	NewID   int32
}

func (m GetRegistryMethod) Encode() pod.Value {
	return pod.NewStructBuilder().Int(m.Version).Int(m.NewID).Build()
}

// CreateObjectMethod asks the server to instantiate an object from a
// named factory, binding it to NewID.
type CreateObjectMethod struct {
	FactoryName string
	ObjectType  string
	Version     int32
	Props       map[string]string
	NewID       int32
}

func (m CreateObjectMethod) Encode() pod.Value {
	return pod.NewStructBuilder().
		String(m.FactoryName).
		String(m.ObjectType).
		Int(m.Version).
		Add(pod.EncodeDict(m.Props)).
		Int(m.NewID).
		Build()
}

// DestroyMethod releases a remote object by id.
type DestroyMethod struct {
	ID int32
}

func (m DestroyMethod) Encode() pod.Value {
	return pod.NewStructBuilder().Int(m.ID).Build()
}

// CoreInfoEvent carries the server's identification, delivered once
// after Hello.
type CoreInfoEvent struct {
	ID         int32
	Cookie     int32
	UserName   string
	HostName   string
	Version    string
	Name       string
	ChangeMask int64
	Props      map[string]string
}

func DecodeCoreInfoEvent(s pod.Value) (CoreInfoEvent, error) {
	fr := pod.NewFieldReader(s)
	var e CoreInfoEvent
	var err error
	if e.ID, err = fr.Int(); err != nil {
		return e, err
	}
	if e.Cookie, err = fr.Int(); err != nil {
		return e, err
	}
	if e.UserName, err = fr.String(); err != nil {
		return e, err
	}
	if e.HostName, err = fr.String(); err != nil {
		return e, err
	}
	if e.Version, err = fr.String(); err != nil {
		return e, err
	}
	if e.Name, err = fr.String(); err != nil {
		return e, err
	}
	if e.ChangeMask, err = fr.Long(); err != nil {
		return e, err
	}
	props, err := fr.Struct()
	if err != nil {
		return e, err
	}
	e.Props, err = pod.DecodeDict(props)
	return e, err
}

// DoneEvent correlates with a prior SyncMethod. The reader fans this
// out both to the Core mailbox and, as a kind-specific Done variant, to
// the proxy named by ID.
type DoneEvent struct {
	ID  int32
	Seq uint32
}

func DecodeDoneEvent(s pod.Value) (DoneEvent, error) {
	fr := pod.NewFieldReader(s)
	var e DoneEvent
	id, err := fr.Int()
	if err != nil {
		return e, err
	}
	seq, err := fr.Int()
	if err != nil {
		return e, err
	}
	e.ID, e.Seq = id, uint32(seq)
	return e, nil
}

// PingEvent asks the client to answer with PongMethod.
type PingEvent struct {
	ID  int32
	Seq uint32
}

func DecodePingEvent(s pod.Value) (PingEvent, error) {
	fr := pod.NewFieldReader(s)
	var e PingEvent
	id, err := fr.Int()
	if err != nil {
		return e, err
	}
	seq, err := fr.Int()
	if err != nil {
		return e, err
	}
	e.ID, e.Seq = id, uint32(seq)
	return e, nil
}

// CoreErrorEvent is the inbound counterpart of CoreErrorMethod: data,
// not an error, to the library — interpretation is the caller's
// responsibility.
type CoreErrorEvent struct {
	ID      int32
	Seq     uint32
	Res     int32
	Message string
}

func DecodeCoreErrorEvent(s pod.Value) (CoreErrorEvent, error) {
	fr := pod.NewFieldReader(s)
	var e CoreErrorEvent
	id, err := fr.Int()
	if err != nil {
		return e, err
	}
	seq, err := fr.Int()
	if err != nil {
		return e, err
	}
	res, err := fr.Int()
	if err != nil {
		return e, err
	}
	msg, err := fr.String()
	if err != nil {
		return e, err
	}
	e.ID, e.Seq, e.Res, e.Message = id, uint32(seq), res, msg
	return e, nil
}

// RemoveIDEvent tells the client an id it knew about is no longer
// valid server-side.
type RemoveIDEvent struct {
	ID int32
}

func DecodeRemoveIDEvent(s pod.Value) (RemoveIDEvent, error) {
	fr := pod.NewFieldReader(s)
	id, err := fr.Int()
	return RemoveIDEvent{ID: id}, err
}

// BoundIDEvent reports the global id a client-created object was bound
// to server-side.
type BoundIDEvent struct {
	ID       int32
	GlobalID int32
}

func DecodeBoundIDEvent(s pod.Value) (BoundIDEvent, error) {
	fr := pod.NewFieldReader(s)
	var e BoundIDEvent
	id, err := fr.Int()
	if err != nil {
		return e, err
	}
	global, err := fr.Int()
	if err != nil {
		return e, err
	}
	e.ID, e.GlobalID = id, global
	return e, nil
}

// MemEvent carries an opaque shared-memory/DMA-buf reference. This
// client treats the fd index and type as an opaque reference surfaced
// to the caller, never dereferencing it: actual audio/video data-plane
// processing is out of scope.
type MemEvent struct {
	ID      int32
	MemType uint32
	FdIndex int64
	Flags   uint32
}

func DecodeAddMemEvent(s pod.Value) (MemEvent, error) {
	fr := pod.NewFieldReader(s)
	var e MemEvent
	id, err := fr.Int()
	if err != nil {
		return e, err
	}
	memType, err := fr.ID()
	if err != nil {
		return e, err
	}
	fd, err := fr.Fd()
	if err != nil {
		return e, err
	}
	flags, err := fr.Int()
	if err != nil {
		return e, err
	}
	e.ID, e.MemType, e.FdIndex, e.Flags = id, memType, fd, uint32(flags)
	return e, nil
}

// RemoveMemEvent invalidates a previously announced MemEvent.
type RemoveMemEvent struct {
	ID int32
}

func DecodeRemoveMemEvent(s pod.Value) (RemoveMemEvent, error) {
	fr := pod.NewFieldReader(s)
	id, err := fr.Int()
	return RemoveMemEvent{ID: id}, err
}

// BoundPropsEvent is BoundIDEvent enriched with the bound object's
// properties.
type BoundPropsEvent struct {
	ID       int32
	GlobalID int32
	Props    map[string]string
}

func DecodeBoundPropsEvent(s pod.Value) (BoundPropsEvent, error) {
	fr := pod.NewFieldReader(s)
	var e BoundPropsEvent
	id, err := fr.Int()
	if err != nil {
		return e, err
	}
	global, err := fr.Int()
	if err != nil {
		return e, err
	}
	props, err := fr.Struct()
	if err != nil {
		return e, err
	}
	m, err := pod.DecodeDict(props)
	if err != nil {
		return e, err
	}
	e.ID, e.GlobalID, e.Props = id, global, m
	return e, nil
}
