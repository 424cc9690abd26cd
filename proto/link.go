package proto

import "pipewire-go-client/pod"

// Link method opcodes.
const (
	LinkMethodAddListener uint8 = 0
	LinkMethodSubscribe   uint8 = 1
)

// Link event opcodes.
const (
	LinkEventInfo uint8 = 0
)

// LinkInfoEvent reports a link's endpoints and current state.
type LinkInfoEvent struct {
	ID           int32
	OutputNodeID int32
	OutputPortID int32
	InputNodeID  int32
	InputPortID  int32
	ChangeMask   int64
	State        int32
	Error        string
	Props        map[string]string
}

func DecodeLinkInfoEvent(s pod.Value) (LinkInfoEvent, error) {
	fr := pod.NewFieldReader(s)
	var e LinkInfoEvent
	var err error
	if e.ID, err = fr.Int(); err != nil {
		return e, err
	}
	if e.OutputNodeID, err = fr.Int(); err != nil {
		return e, err
	}
	if e.OutputPortID, err = fr.Int(); err != nil {
		return e, err
	}
	if e.InputNodeID, err = fr.Int(); err != nil {
		return e, err
	}
	if e.InputPortID, err = fr.Int(); err != nil {
		return e, err
	}
	if e.ChangeMask, err = fr.Long(); err != nil {
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
