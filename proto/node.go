package proto

import "pipewire-go-client/pod"

// Node method opcodes.
const (
	NodeMethodAddListener uint8 = 0
	NodeMethodSubscribe   uint8 = 1
	NodeMethodEnumParams  uint8 = 2
	NodeMethodSetParam    uint8 = 3
	NodeMethodSetIOConf   uint8 = 4
)

// Node event opcodes.
const (
	NodeEventInfo  uint8 = 0
	NodeEventParam uint8 = 1
)

// NodeInfoEvent reports a node's current state and properties.
type NodeInfoEvent struct {
	ID             int32
	ChangeMask     int64
	MaxInputPorts  int32
	MaxOutputPorts int32
	NInputPorts    int32
	NOutputPorts   int32
	State          int32
	Error          string
	Props          map[string]string
}

func DecodeNodeInfoEvent(s pod.Value) (NodeInfoEvent, error) {
	fr := pod.NewFieldReader(s)
	var e NodeInfoEvent
	var err error
	if e.ID, err = fr.Int(); err != nil {
		return e, err
	}
	if e.ChangeMask, err = fr.Long(); err != nil {
		return e, err
	}
	if e.MaxInputPorts, err = fr.Int(); err != nil {
		return e, err
	}
	if e.MaxOutputPorts, err = fr.Int(); err != nil {
		return e, err
	}
	if e.NInputPorts, err = fr.Int(); err != nil {
		return e, err
	}
	if e.NOutputPorts, err = fr.Int(); err != nil {
		return e, err
	}
	if e.State, err = fr.Int(); err != nil {
		return e, err
	}
	if e.Error, err = fr.String(); err != nil {
		return e, err
	}
	props, err := fr.Struct()
	if err != nil {
		return e, err
	}
	e.Props, err = pod.DecodeDict(props)
	return e, err
}
