package proto

import "pipewire-go-client/pod"

// Metadata method opcodes.
const (
	MetadataMethodAddListener uint8 = 0
	MetadataMethodSetProperty uint8 = 1
	MetadataMethodClear       uint8 = 2
)

// Metadata event opcodes.
const (
	MetadataEventProperty uint8 = 0
)

// SetPropertyMethod sets (or, with an empty Value, clears) a single
// key/value/type property on Subject.
type SetPropertyMethod struct {
	ID      int32
	Subject int32
	Key     string
	Type    string
	Value   string
}

func (m SetPropertyMethod) Encode() pod.Value {
	return pod.NewStructBuilder().
		Int(m.ID).
		Int(m.Subject).
		String(m.Key).
		String(m.Type).
		String(m.Value).
		Build()
}

// ClearMethod removes every property this client has set on the
// metadata store.
type ClearMethod struct {
	ID int32
}

func (m ClearMethod) Encode() pod.Value {
	return pod.NewStructBuilder().Int(m.ID).Build()
}

// PropertyEvent announces a property change in the metadata store.
type PropertyEvent struct {
	ID      int32
	Subject int32
	Key     string
	Type    string
	Value   string
}

func DecodePropertyEvent(s pod.Value) (PropertyEvent, error) {
	fr := pod.NewFieldReader(s)
	var e PropertyEvent
	var err error
	if e.ID, err = fr.Int(); err != nil {
		return e, err
	}
	if e.Subject, err = fr.Int(); err != nil {
		return e, err
	}
	if e.Key, err = fr.String(); err != nil {
		return e, err
	}
	if e.Type, err = fr.String(); err != nil {
		return e, err
	}
	if e.Value, err = fr.String(); err != nil {
		return e, err
	}
	return e, nil
}
