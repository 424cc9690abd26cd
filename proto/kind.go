// Package proto defines the per-interface opcode tables and
// method/event payload types for every PipeWire object kind this client
// dispatches on.
//
// Each interface owns two disjoint opcode spaces, methods and events,
// both numbered from zero independently: the dispatcher must key on
// (kind, opcode), never on opcode alone.
package proto

// Kind names an object interface for dispatch purposes.
type Kind int

const (
	KindCore Kind = iota
	KindClient
	KindRegistry
	KindNode
	KindPort
	KindDevice
	KindLink
	KindModule
	KindFactory
	KindMetadata
	KindProfiler
	KindClientNode
)

func (k Kind) String() string {
	switch k {
	case KindCore:
		return "Core"
	case KindClient:
		return "Client"
	case KindRegistry:
		return "Registry"
	case KindNode:
		return "Node"
	case KindPort:
		return "Port"
	case KindDevice:
		return "Device"
	case KindLink:
		return "Link"
	case KindModule:
		return "Module"
	case KindFactory:
		return "Factory"
	case KindMetadata:
		return "Metadata"
	case KindProfiler:
		return "Profiler"
	case KindClientNode:
		return "ClientNode"
	default:
		return "Unknown"
	}
}

// CoreObjectID and ClientObjectID are the two reserved, implicitly
// created object ids.
const (
	CoreObjectID   int32 = 0
	ClientObjectID int32 = 1
)

// ProtocolVersion is the native protocol version this client negotiates
// via Core.Hello.
const ProtocolVersion int32 = 3

// RegistryInterfaceVersion is the version of the Registry interface
// this client implements.
const RegistryInterfaceVersion int32 = 3
