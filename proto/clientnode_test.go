package proto

import (
	"reflect"
	"testing"

	"pipewire-go-client/pod"
)

func TestClientNodeUpdateRoundTrip(t *testing.T) {
	u := ClientNodeUpdate{
		ChangeMask: 0x3,
		Params:     []pod.Value{pod.Int(1), pod.String("rate"), pod.Bool(true)},
		Info: NodeUpdateInfo{
			MaxInputPorts:  2,
			MaxOutputPorts: 1,
			ChangeMask:     0x7,
			Props:          map[string]string{"node.name": "sink"},
		},
	}

	encoded, n, err := pod.Decode(mustEncode(t, u.Encode()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	_ = n

	got, err := DecodeClientNodeUpdate(encoded)
	if err != nil {
		t.Fatalf("DecodeClientNodeUpdate: %v", err)
	}
	if got.ChangeMask != u.ChangeMask {
		t.Fatalf("ChangeMask = %d, want %d", got.ChangeMask, u.ChangeMask)
	}
	if len(got.Params) != len(u.Params) {
		t.Fatalf("len(Params) = %d, want %d", len(got.Params), len(u.Params))
	}
	for i := range u.Params {
		if !reflect.DeepEqual(got.Params[i], u.Params[i]) {
			t.Fatalf("Params[%d] = %#v, want %#v", i, got.Params[i], u.Params[i])
		}
	}
	if !reflect.DeepEqual(got.Info, u.Info) {
		t.Fatalf("Info = %#v, want %#v", got.Info, u.Info)
	}
}

func TestClientNodeUpdateEmptyParams(t *testing.T) {
	u := ClientNodeUpdate{ChangeMask: 0, Params: nil, Info: NodeUpdateInfo{Props: map[string]string{}}}
	decoded, _, err := pod.Decode(mustEncode(t, u.Encode()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, err := DecodeClientNodeUpdate(decoded)
	if err != nil {
		t.Fatalf("DecodeClientNodeUpdate: %v", err)
	}
	if len(got.Params) != 0 {
		t.Fatalf("len(Params) = %d, want 0", len(got.Params))
	}
}

func TestPortUpdateRoundTrip(t *testing.T) {
	u := PortUpdate{
		Direction:  1,
		PortID:     3,
		ChangeMask: 0x1,
		Params:     []pod.Value{pod.Long(99)},
		Info: PortUpdateInfo{
			Rate:       pod.Fraction{Num: 48000, Denom: 1},
			ChangeMask: 0x2,
			Props:      map[string]string{"port.name": "out"},
		},
	}
	decoded, _, err := pod.Decode(mustEncode(t, u.Encode()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, err := DecodePortUpdate(decoded)
	if err != nil {
		t.Fatalf("DecodePortUpdate: %v", err)
	}
	if got.Direction != u.Direction || got.PortID != u.PortID || got.ChangeMask != u.ChangeMask {
		t.Fatalf("got %#v, want %#v", got, u)
	}
	if got.Info.Rate != u.Info.Rate {
		t.Fatalf("Rate = %#v, want %#v", got.Info.Rate, u.Info.Rate)
	}
}

func TestUseBuffersRoundTripWithNestedCounts(t *testing.T) {
	m := UseBuffersMethod{
		ID: 5, Direction: 0, PortID: 2, MixID: 0, Flags: 1,
		Buffers: []BufferDesc{
			{
				Metas: []MetaBlock{{Type: 1, Size: 16}},
				Datas: []DataBlock{
					{Type: 2, FdIndex: 0, Flags: 0, MapOffset: 0, MapSize: 4096},
					{Type: 2, FdIndex: 1, Flags: 0, MapOffset: 4096, MapSize: 4096},
				},
			},
			{
				Metas: nil,
				Datas: []DataBlock{{Type: 2, FdIndex: 2, Flags: 0, MapOffset: 0, MapSize: 4096}},
			},
		},
	}

	decoded, _, err := pod.Decode(mustEncode(t, m.Encode()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, err := DecodeUseBuffersMethod(decoded)
	if err != nil {
		t.Fatalf("DecodeUseBuffersMethod: %v", err)
	}
	if len(got.Buffers) != 2 {
		t.Fatalf("len(Buffers) = %d, want 2", len(got.Buffers))
	}
	if len(got.Buffers[0].Datas) != 2 {
		t.Fatalf("len(Buffers[0].Datas) = %d, want 2", len(got.Buffers[0].Datas))
	}
	if got.Buffers[0].Datas[1].FdIndex != 1 {
		t.Fatalf("Buffers[0].Datas[1].FdIndex = %d, want 1", got.Buffers[0].Datas[1].FdIndex)
	}
	if len(got.Buffers[1].Metas) != 0 {
		t.Fatalf("len(Buffers[1].Metas) = %d, want 0", len(got.Buffers[1].Metas))
	}
}

func TestDecodeTransportEvent(t *testing.T) {
	payload := pod.NewStructBuilder().Fd(3).Fd(4).Int(7).Int(0).Int(8192).Build()
	got, err := DecodeTransportEvent(payload)
	if err != nil {
		t.Fatalf("DecodeTransportEvent: %v", err)
	}
	if got.ReadFdIndex != 3 || got.WriteFdIndex != 4 || got.MemID != 7 || got.Size != 8192 {
		t.Fatalf("got %#v", got)
	}
}

func mustEncode(t *testing.T, v pod.Value) []byte {
	t.Helper()
	b, err := pod.Encode(v)
	if err != nil {
		t.Fatalf("pod.Encode: %v", err)
	}
	return b
}
