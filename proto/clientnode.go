// ClientNode method payloads are not plain records: they carry
// count-prefixed lists encoded as adjacent struct fields rather than as
// pod Arrays. They get hand-written encoders/decoders that emit/consume
// the count then loop exactly that many times; the generic derivation
// protocol can't express this shape.
package proto

import "pipewire-go-client/pod"

// ClientNode method opcodes.
const (
	ClientNodeMethodAddListener uint8 = 0
	ClientNodeMethodUpdate      uint8 = 1
	ClientNodeMethodPortUpdate  uint8 = 2
	ClientNodeMethodSetActive   uint8 = 3
	ClientNodeMethodEvent       uint8 = 4
	ClientNodeMethodPortBuffers uint8 = 5
)

// ClientNode event opcodes.
const (
	ClientNodeEventTransport uint8 = 0
	ClientNodeEventSetParam  uint8 = 1
	ClientNodeEventSetIOConf uint8 = 2
	ClientNodeEventCommand   uint8 = 3
)

// NodeUpdateInfo is the trailing Info record of a ClientNodeUpdate.
type NodeUpdateInfo struct {
	MaxInputPorts  int32
	MaxOutputPorts int32
	ChangeMask     int64
	Props          map[string]string
}

// ClientNodeUpdate is the Update method payload: change_mask, an
// explicit count of heterogeneous param pods, then the params
// themselves, then an Info record.
type ClientNodeUpdate struct {
	ChangeMask int32
	Params     []pod.Value
	Info       NodeUpdateInfo
}

func (u ClientNodeUpdate) Encode() pod.Value {
	b := pod.NewStructBuilder()
	b.Int(u.ChangeMask)
	b.Int(int32(len(u.Params)))
	for _, p := range u.Params {
		b.Add(p)
	}
	b.Int(u.Info.MaxInputPorts)
	b.Int(u.Info.MaxOutputPorts)
	b.Long(u.Info.ChangeMask)
	b.Add(pod.EncodeDict(u.Info.Props))
	return b.Build()
}

// DecodeClientNodeUpdate reads exactly the n_params pods the header
// declares, then the trailing Info record.
func DecodeClientNodeUpdate(s pod.Value) (ClientNodeUpdate, error) {
	fr := pod.NewFieldReader(s)
	var u ClientNodeUpdate

	changeMask, err := fr.Int()
	if err != nil {
		return u, err
	}
	n, err := fr.Int()
	if err != nil {
		return u, err
	}
	params := make([]pod.Value, 0, n)
	for i := int32(0); i < n; i++ {
		v, err := fr.Any()
		if err != nil {
			return u, err
		}
		params = append(params, v)
	}
	maxIn, err := fr.Int()
	if err != nil {
		return u, err
	}
	maxOut, err := fr.Int()
	if err != nil {
		return u, err
	}
	cm, err := fr.Long()
	if err != nil {
		return u, err
	}
	props, err := fr.Struct()
	if err != nil {
		return u, err
	}
	m, err := pod.DecodeDict(props)
	if err != nil {
		return u, err
	}

	u.ChangeMask = changeMask
	u.Params = params
	u.Info = NodeUpdateInfo{MaxInputPorts: maxIn, MaxOutputPorts: maxOut, ChangeMask: cm, Props: m}
	return u, nil
}

// PortUpdateInfo is the trailing Info record of a PortUpdate.
type PortUpdateInfo struct {
	Rate       pod.Fraction
	ChangeMask int64
	Props      map[string]string
}

// PortUpdate is the PortUpdate method payload, shaped like
// ClientNodeUpdate but scoped to one port.
type PortUpdate struct {
	Direction  uint32
	PortID     int32
	ChangeMask int32
	Params     []pod.Value
	Info       PortUpdateInfo
}

func (u PortUpdate) Encode() pod.Value {
	b := pod.NewStructBuilder()
	b.ID(u.Direction)
	b.Int(u.PortID)
	b.Int(u.ChangeMask)
	b.Int(int32(len(u.Params)))
	for _, p := range u.Params {
		b.Add(p)
	}
	b.Fraction(u.Info.Rate.Num, u.Info.Rate.Denom)
	b.Long(u.Info.ChangeMask)
	b.Add(pod.EncodeDict(u.Info.Props))
	return b.Build()
}

func DecodePortUpdate(s pod.Value) (PortUpdate, error) {
	fr := pod.NewFieldReader(s)
	var u PortUpdate

	direction, err := fr.ID()
	if err != nil {
		return u, err
	}
	portID, err := fr.Int()
	if err != nil {
		return u, err
	}
	changeMask, err := fr.Int()
	if err != nil {
		return u, err
	}
	n, err := fr.Int()
	if err != nil {
		return u, err
	}
	params := make([]pod.Value, 0, n)
	for i := int32(0); i < n; i++ {
		v, err := fr.Any()
		if err != nil {
			return u, err
		}
		params = append(params, v)
	}
	rate, err := fr.Fraction()
	if err != nil {
		return u, err
	}
	cm, err := fr.Long()
	if err != nil {
		return u, err
	}
	props, err := fr.Struct()
	if err != nil {
		return u, err
	}
	m, err := pod.DecodeDict(props)
	if err != nil {
		return u, err
	}

	u.Direction, u.PortID, u.ChangeMask = direction, portID, changeMask
	u.Params = params
	u.Info = PortUpdateInfo{Rate: rate, ChangeMask: cm, Props: m}
	return u, nil
}

// MetaBlock describes one metadata block attached to a buffer.
type MetaBlock struct {
	Type uint32
	Size uint32
}

// DataBlock describes one data plane attached to a buffer: an opaque
// fd/shared-memory reference, never dereferenced here.
type DataBlock struct {
	Type      uint32
	FdIndex   int64
	Flags     uint32
	MapOffset uint32
	MapSize   uint32
}

// BufferDesc is one buffer's metas and data blocks.
type BufferDesc struct {
	Metas []MetaBlock
	Datas []DataBlock
}

// UseBuffersMethod (a.k.a. PortBuffers) hands the server a list of
// buffers for one port/mix, each itself a nested count-prefixed list of
// metas and data blocks — all counts are i32, not array pods.
type UseBuffersMethod struct {
	ID        int32
	Direction uint32
	PortID    int32
	MixID     int32
	Flags     uint32
	Buffers   []BufferDesc
}

func (m UseBuffersMethod) Encode() pod.Value {
	b := pod.NewStructBuilder()
	b.Int(m.ID)
	b.ID(m.Direction)
	b.Int(m.PortID)
	b.Int(m.MixID)
	b.Int(int32(m.Flags))
	b.Int(int32(len(m.Buffers)))
	for _, buf := range m.Buffers {
		b.Int(int32(len(buf.Metas)))
		for _, meta := range buf.Metas {
			b.ID(meta.Type)
			b.Int(int32(meta.Size))
		}
		b.Int(int32(len(buf.Datas)))
		for _, d := range buf.Datas {
			b.ID(d.Type)
			b.Fd(d.FdIndex)
			b.Int(int32(d.Flags))
			b.Int(int32(d.MapOffset))
			b.Int(int32(d.MapSize))
		}
	}
	return b.Build()
}

func DecodeUseBuffersMethod(s pod.Value) (UseBuffersMethod, error) {
	fr := pod.NewFieldReader(s)
	var m UseBuffersMethod

	id, err := fr.Int()
	if err != nil {
		return m, err
	}
	direction, err := fr.ID()
	if err != nil {
		return m, err
	}
	portID, err := fr.Int()
	if err != nil {
		return m, err
	}
	mixID, err := fr.Int()
	if err != nil {
		return m, err
	}
	flags, err := fr.Int()
	if err != nil {
		return m, err
	}
	nBuffers, err := fr.Int()
	if err != nil {
		return m, err
	}

	buffers := make([]BufferDesc, 0, nBuffers)
	for i := int32(0); i < nBuffers; i++ {
		var buf BufferDesc

		nMetas, err := fr.Int()
		if err != nil {
			return m, err
		}
		for j := int32(0); j < nMetas; j++ {
			typ, err := fr.ID()
			if err != nil {
				return m, err
			}
			size, err := fr.Int()
			if err != nil {
				return m, err
			}
			buf.Metas = append(buf.Metas, MetaBlock{Type: typ, Size: uint32(size)})
		}

		nDatas, err := fr.Int()
		if err != nil {
			return m, err
		}
		for j := int32(0); j < nDatas; j++ {
			typ, err := fr.ID()
			if err != nil {
				return m, err
			}
			fd, err := fr.Fd()
			if err != nil {
				return m, err
			}
			flags, err := fr.Int()
			if err != nil {
				return m, err
			}
			mapOffset, err := fr.Int()
			if err != nil {
				return m, err
			}
			mapSize, err := fr.Int()
			if err != nil {
				return m, err
			}
			buf.Datas = append(buf.Datas, DataBlock{
				Type: typ, FdIndex: fd, Flags: uint32(flags),
				MapOffset: uint32(mapOffset), MapSize: uint32(mapSize),
			})
		}
		buffers = append(buffers, buf)
	}

	m.ID, m.Direction, m.PortID, m.MixID, m.Flags = id, direction, portID, mixID, uint32(flags)
	m.Buffers = buffers
	return m, nil
}

// TransportEvent hands the client an opaque memfd-backed ring buffer
// reference for the realtime data plane: the control plane surfaces it
// as opaque fd indices and offsets without interpreting the ring
// buffer contents itself.
type TransportEvent struct {
	ReadFdIndex  int64
	WriteFdIndex int64
	MemID        int32
	Offset       int32
	Size         int32
}

func DecodeTransportEvent(s pod.Value) (TransportEvent, error) {
	fr := pod.NewFieldReader(s)
	var e TransportEvent
	var err error
	if e.ReadFdIndex, err = fr.Fd(); err != nil {
		return e, err
	}
	if e.WriteFdIndex, err = fr.Fd(); err != nil {
		return e, err
	}
	if e.MemID, err = fr.Int(); err != nil {
		return e, err
	}
	if e.Offset, err = fr.Int(); err != nil {
		return e, err
	}
	if e.Size, err = fr.Int(); err != nil {
		return e, err
	}
	return e, nil
}
