package proxy

import (
	"pipewire-go-client/perr"
	"pipewire-go-client/pod"
	"pipewire-go-client/proto"
)

// CoreDecoder decodes every event opcode the Core interface emits.
func CoreDecoder(opcode uint8, payload pod.Value) (any, error) {
	switch opcode {
	case proto.CoreEventInfo:
		return proto.DecodeCoreInfoEvent(payload)
	case proto.CoreEventDone:
		return proto.DecodeDoneEvent(payload)
	case proto.CoreEventPing:
		return proto.DecodePingEvent(payload)
	case proto.CoreEventError:
		return proto.DecodeCoreErrorEvent(payload)
	case proto.CoreEventRemoveID:
		return proto.DecodeRemoveIDEvent(payload)
	case proto.CoreEventBoundID:
		return proto.DecodeBoundIDEvent(payload)
	case proto.CoreEventAddMem:
		return proto.DecodeAddMemEvent(payload)
	case proto.CoreEventRemoveMem:
		return proto.DecodeRemoveMemEvent(payload)
	case proto.CoreEventBoundProps:
		return proto.DecodeBoundPropsEvent(payload)
	default:
		return nil, perr.ErrUnsupportedType
	}
}

// ClientDecoder decodes every event opcode the Client interface emits.
func ClientDecoder(opcode uint8, payload pod.Value) (any, error) {
	switch opcode {
	case proto.ClientEventInfo:
		return proto.DecodeClientInfoEvent(payload)
	case proto.ClientEventPermissions:
		return proto.DecodePermissionsEvent(payload)
	default:
		return nil, perr.ErrUnsupportedType
	}
}

// RegistryDecoder decodes every event opcode the Registry interface
// emits.
func RegistryDecoder(opcode uint8, payload pod.Value) (any, error) {
	switch opcode {
	case proto.RegistryEventGlobal:
		return proto.DecodeGlobalEvent(payload)
	case proto.RegistryEventGlobalRemove:
		return proto.DecodeGlobalRemoveEvent(payload)
	default:
		return nil, perr.ErrUnsupportedType
	}
}

// NodeDecoder decodes every event opcode the Node interface emits.
func NodeDecoder(opcode uint8, payload pod.Value) (any, error) {
	switch opcode {
	case proto.NodeEventInfo:
		return proto.DecodeNodeInfoEvent(payload)
	case proto.NodeEventParam:
		return proto.DecodeParamEvent(payload)
	default:
		return nil, perr.ErrUnsupportedType
	}
}

// PortDecoder decodes every event opcode the Port interface emits.
func PortDecoder(opcode uint8, payload pod.Value) (any, error) {
	switch opcode {
	case proto.PortEventInfo:
		return proto.DecodePortInfoEvent(payload)
	case proto.PortEventParam:
		return proto.DecodeParamEvent(payload)
	default:
		return nil, perr.ErrUnsupportedType
	}
}

// DeviceDecoder decodes every event opcode the Device interface emits.
func DeviceDecoder(opcode uint8, payload pod.Value) (any, error) {
	switch opcode {
	case proto.DeviceEventInfo:
		return proto.DecodeDeviceInfoEvent(payload)
	case proto.DeviceEventParam:
		return proto.DecodeParamEvent(payload)
	default:
		return nil, perr.ErrUnsupportedType
	}
}

// LinkDecoder decodes every event opcode the Link interface emits.
func LinkDecoder(opcode uint8, payload pod.Value) (any, error) {
	switch opcode {
	case proto.LinkEventInfo:
		return proto.DecodeLinkInfoEvent(payload)
	default:
		return nil, perr.ErrUnsupportedType
	}
}

// ModuleDecoder decodes every event opcode the Module interface emits.
func ModuleDecoder(opcode uint8, payload pod.Value) (any, error) {
	switch opcode {
	case proto.ModuleEventInfo:
		return proto.DecodeModuleInfoEvent(payload)
	default:
		return nil, perr.ErrUnsupportedType
	}
}

// FactoryDecoder decodes every event opcode the Factory interface
// emits.
func FactoryDecoder(opcode uint8, payload pod.Value) (any, error) {
	switch opcode {
	case proto.FactoryEventInfo:
		return proto.DecodeFactoryInfoEvent(payload)
	default:
		return nil, perr.ErrUnsupportedType
	}
}

// MetadataDecoder decodes every event opcode the Metadata interface
// emits.
func MetadataDecoder(opcode uint8, payload pod.Value) (any, error) {
	switch opcode {
	case proto.MetadataEventProperty:
		return proto.DecodePropertyEvent(payload)
	default:
		return nil, perr.ErrUnsupportedType
	}
}

// ProfilerDecoder decodes every event opcode the Profiler interface
// emits.
func ProfilerDecoder(opcode uint8, payload pod.Value) (any, error) {
	switch opcode {
	case proto.ProfilerEventProfile:
		return proto.DecodeProfileEvent(payload)
	default:
		return nil, perr.ErrUnsupportedType
	}
}

// ClientNodeDecoder decodes every event opcode the ClientNode
// interface emits.
func ClientNodeDecoder(opcode uint8, payload pod.Value) (any, error) {
	switch opcode {
	case proto.ClientNodeEventTransport:
		return proto.DecodeTransportEvent(payload)
	case proto.ClientNodeEventSetParam:
		return proto.DecodeParamEvent(payload)
	default:
		return nil, perr.ErrUnsupportedType
	}
}

// DecoderFor returns the EventDecoder for a given object kind, for
// callers (pwclient's Bind and CreateObject) that allocate a proxy of a kind only
// known at runtime (e.g. binding a Registry.Global by its ObjectType
// string).
func DecoderFor(kind proto.Kind) EventDecoder {
	switch kind {
	case proto.KindCore:
		return CoreDecoder
	case proto.KindClient:
		return ClientDecoder
	case proto.KindRegistry:
		return RegistryDecoder
	case proto.KindNode:
		return NodeDecoder
	case proto.KindPort:
		return PortDecoder
	case proto.KindDevice:
		return DeviceDecoder
	case proto.KindLink:
		return LinkDecoder
	case proto.KindModule:
		return ModuleDecoder
	case proto.KindFactory:
		return FactoryDecoder
	case proto.KindMetadata:
		return MetadataDecoder
	case proto.KindProfiler:
		return ProfilerDecoder
	case proto.KindClientNode:
		return ClientNodeDecoder
	default:
		return func(uint8, pod.Value) (any, error) { return nil, perr.ErrUnsupportedType }
	}
}
