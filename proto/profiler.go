package proto

import "pipewire-go-client/pod"

// Profiler method opcodes.
const (
	ProfilerMethodAddListener uint8 = 0
)

// Profiler event opcodes.
const (
	ProfilerEventProfile uint8 = 0
)

// ProfileEvent carries one opaque profiler sample struct, emitted
// periodically while a Profiler proxy is bound. The sample's internal
// shape is server/version-specific and is surfaced to the caller as a
// raw pod value rather than a fixed Go struct.
type ProfileEvent struct {
	Sample pod.Value
}

func DecodeProfileEvent(s pod.Value) (ProfileEvent, error) {
	fr := pod.NewFieldReader(s)
	v, err := fr.Any()
	if err != nil {
		return ProfileEvent{}, err
	}
	return ProfileEvent{Sample: v}, nil
}
