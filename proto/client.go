package proto

import "pipewire-go-client/pod"

// Client method opcodes. Opcode 1 is Error here, distinct from Core's
// own opcode 1 (Hello): opcodes are scoped per interface, not global.
const (
	ClientMethodAddListener uint8 = 0
	ClientMethodError       uint8 = 1
	ClientMethodUpdateProps uint8 = 2
)

// Client event opcodes.
const (
	ClientEventInfo        uint8 = 0
	ClientEventPermissions uint8 = 1
)

// ClientErrorMethod reports a client-side error back to the server.
type ClientErrorMethod struct {
	ID      int32
	Res     int32
	Message string
}

func (m ClientErrorMethod) Encode() pod.Value {
	return pod.NewStructBuilder().Int(m.ID).Int(m.Res).String(m.Message).Build()
}

// UpdatePropertiesMethod replaces the client's property set.
type UpdatePropertiesMethod struct {
	Props map[string]string
}

func (m UpdatePropertiesMethod) Encode() pod.Value {
	return pod.NewStructBuilder().Add(pod.EncodeDict(m.Props)).Build()
}

// ClientInfoEvent describes the client object as the server sees it.
type ClientInfoEvent struct {
	ID    int32
	Props map[string]string
}

func DecodeClientInfoEvent(s pod.Value) (ClientInfoEvent, error) {
	fr := pod.NewFieldReader(s)
	var e ClientInfoEvent
	id, err := fr.Int()
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
	e.ID, e.Props = id, m
	return e, nil
}

// PermissionsEvent reports the permission bitmask the server granted
// this client for globals starting at Index.
type PermissionsEvent struct {
	Index       uint32
	Permissions []uint32
}

func DecodePermissionsEvent(s pod.Value) (PermissionsEvent, error) {
	fr := pod.NewFieldReader(s)
	var e PermissionsEvent
	index, err := fr.Int()
	if err != nil {
		return e, err
	}
	arr, err := fr.Array()
	if err != nil {
		return e, err
	}
	perms := make([]uint32, 0, len(arr.Elems))
	for _, el := range arr.Elems {
		perms = append(perms, el.IDVal)
	}
	e.Index, e.Permissions = uint32(index), perms
	return e, nil
}
