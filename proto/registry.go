package proto

import "pipewire-go-client/pod"

// Registry method opcodes.
const (
	RegistryMethodAddListener uint8 = 0
	RegistryMethodBind        uint8 = 1
)

// Registry event opcodes.
const (
	RegistryEventGlobal       uint8 = 0
	RegistryEventGlobalRemove uint8 = 1
)

// BindMethod asks the server to bind global ID to a fresh local proxy
// at NewID.
type BindMethod struct {
	ID         int32
	ObjectType string
	Version    int32
	NewID      int32
}

func (m BindMethod) Encode() pod.Value {
	return pod.NewStructBuilder().
		Int(m.ID).
		String(m.ObjectType).
		Int(m.Version).
		Int(m.NewID).
		Build()
}

// GlobalEvent announces one object the server is willing to let this
// client bind.
type GlobalEvent struct {
	ID          int32
	Permissions uint32
	ObjectType  string
	Version     int32
	Props       map[string]string
}

func DecodeGlobalEvent(s pod.Value) (GlobalEvent, error) {
	fr := pod.NewFieldReader(s)
	var e GlobalEvent
	id, err := fr.Int()
	if err != nil {
		return e, err
	}
	perm, err := fr.ID()
	if err != nil {
		return e, err
	}
	typ, err := fr.String()
	if err != nil {
		return e, err
	}
	version, err := fr.Int()
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
	e.ID, e.Permissions, e.ObjectType, e.Version, e.Props = id, perm, typ, version, m
	return e, nil
}

// GlobalRemoveEvent announces a previously seen global is gone.
type GlobalRemoveEvent struct {
	ID int32
}

func DecodeGlobalRemoveEvent(s pod.Value) (GlobalRemoveEvent, error) {
	fr := pod.NewFieldReader(s)
	id, err := fr.Int()
	return GlobalRemoveEvent{ID: id}, err
}
