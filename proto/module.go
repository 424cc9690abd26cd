package proto

import "pipewire-go-client/pod"

// Module method opcodes.
const (
	ModuleMethodAddListener uint8 = 0
)

// Module event opcodes.
const (
	ModuleEventInfo uint8 = 0
)

// ModuleInfoEvent reports a loaded module's identity.
type ModuleInfoEvent struct {
	ID          int32
	Name        string
	FileName    string
	Args        string
	ChangeMask  int64
	Props       map[string]string
}

func DecodeModuleInfoEvent(s pod.Value) (ModuleInfoEvent, error) {
	fr := pod.NewFieldReader(s)
	var e ModuleInfoEvent
	var err error
	if e.ID, err = fr.Int(); err != nil {
		return e, err
	}
	if e.Name, err = fr.String(); err != nil {
		return e, err
	}
	if e.FileName, err = fr.String(); err != nil {
		return e, err
	}
	if e.Args, err = fr.String(); err != nil {
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
