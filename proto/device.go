package proto

import "pipewire-go-client/pod"

// Device method opcodes.
const (
	DeviceMethodAddListener uint8 = 0
	DeviceMethodSubscribe   uint8 = 1
	DeviceMethodEnumParams  uint8 = 2
	DeviceMethodSetParam    uint8 = 3
)

// Device event opcodes.
const (
	DeviceEventInfo  uint8 = 0
	DeviceEventParam uint8 = 1
)

// DeviceInfoEvent reports a device's properties and parameter count.
type DeviceInfoEvent struct {
	ID         int32
	ChangeMask int64
	NParams    int32
	Props      map[string]string
}

func DecodeDeviceInfoEvent(s pod.Value) (DeviceInfoEvent, error) {
	fr := pod.NewFieldReader(s)
	var e DeviceInfoEvent
	var err error
	if e.ID, err = fr.Int(); err != nil {
		return e, err
	}
	if e.ChangeMask, err = fr.Long(); err != nil {
		return e, err
	}
	if e.NParams, err = fr.Int(); err != nil {
		return e, err
	}
	props, err := fr.Struct()
	if err != nil {
		return e, err
	}
	e.Props, err = pod.DecodeDict(props)
	return e, err
}
