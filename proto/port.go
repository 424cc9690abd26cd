package proto

import "pipewire-go-client/pod"

// Port method opcodes.
const (
	PortMethodAddListener uint8 = 0
	PortMethodSubscribe   uint8 = 1
	PortMethodEnumParams  uint8 = 2
)

// Port event opcodes.
const (
	PortEventInfo  uint8 = 0
	PortEventParam uint8 = 1
)

// PortInfoEvent reports a port's direction, state, and properties.
type PortInfoEvent struct {
	ID         int32
	Direction  uint32
	ChangeMask int64
	Props      map[string]string
}

func DecodePortInfoEvent(s pod.Value) (PortInfoEvent, error) {
	fr := pod.NewFieldReader(s)
	var e PortInfoEvent
	var err error
	if e.ID, err = fr.Int(); err != nil {
		return e, err
	}
	if e.Direction, err = fr.ID(); err != nil {
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
