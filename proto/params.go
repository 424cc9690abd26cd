package proto

import "pipewire-go-client/pod"

// ParamEvent is the common shape of a "Param" event shared by Node,
// Port, and Device: the server reports one enumerated or current
// parameter pod per event, tagged with the param id it belongs to and
// the direction it applies to.
type ParamEvent struct {
	ID        int32
	ParamID   uint32
	Direction uint32
	ParamFlags uint32
	Param     pod.Value
}

func DecodeParamEvent(s pod.Value) (ParamEvent, error) {
	fr := pod.NewFieldReader(s)
	var e ParamEvent
	id, err := fr.Int()
	if err != nil {
		return e, err
	}
	paramID, err := fr.ID()
	if err != nil {
		return e, err
	}
	direction, err := fr.ID()
	if err != nil {
		return e, err
	}
	flags, err := fr.Int()
	if err != nil {
		return e, err
	}
	param, err := fr.Any()
	if err != nil {
		return e, err
	}
	e.ID, e.ParamID, e.Direction, e.ParamFlags, e.Param = id, paramID, direction, uint32(flags), param
	return e, nil
}

// SetParamMethod pushes a new parameter value for ParamID.
type SetParamMethod struct {
	ID      int32
	ParamID uint32
	Flags   uint32
	Param   pod.Value
}

func (m SetParamMethod) Encode() pod.Value {
	return pod.NewStructBuilder().
		Int(m.ID).
		ID(m.ParamID).
		Int(int32(m.Flags)).
		Add(m.Param).
		Build()
}

// EnumParamsMethod asks the remote object to emit Param events for
// every value it supports of ParamID.
type EnumParamsMethod struct {
	ID       int32
	Seq      int32
	ParamID  uint32
	Start    int32
	Num      int32
	Filter   pod.Value
}

func (m EnumParamsMethod) Encode() pod.Value {
	return pod.NewStructBuilder().
		Int(m.ID).
		Int(m.Seq).
		ID(m.ParamID).
		Int(m.Start).
		Int(m.Num).
		Add(m.Filter).
		Build()
}
