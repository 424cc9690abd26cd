package proto

import "pipewire-go-client/pod"

// Factory method opcodes.
const (
	FactoryMethodAddListener uint8 = 0
)

// Factory event opcodes.
const (
	FactoryEventInfo uint8 = 0
)

// FactoryInfoEvent reports the object type and version a named factory
// produces (used by CreateObjectMethod callers to pick a factory).
type FactoryInfoEvent struct {
	ID         int32
	Name       string
	ObjectType string
	Version    int32
	ChangeMask int64
	Props      map[string]string
}

func DecodeFactoryInfoEvent(s pod.Value) (FactoryInfoEvent, error) {
	fr := pod.NewFieldReader(s)
	var e FactoryInfoEvent
	var err error
	if e.ID, err = fr.Int(); err != nil {
		return e, err
	}
	if e.Name, err = fr.String(); err != nil {
		return e, err
	}
	if e.ObjectType, err = fr.String(); err != nil {
		return e, err
	}
	if e.Version, err = fr.Int(); err != nil {
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
