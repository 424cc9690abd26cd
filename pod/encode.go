package pod

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"pipewire-go-client/perr"
)

// headerSize is the fixed (size uint32, type uint32) pod header.
const headerSize = 8

// Encode serializes v as a complete pod: 8-byte header, body, and
// zero-padding out to a multiple of 8.
func Encode(v Value) ([]byte, error) {
	var out bytes.Buffer
	if err := writePod(&out, v); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// writePod appends one complete (header + padded body) pod to out.
func writePod(out *bytes.Buffer, v Value) error {
	var body bytes.Buffer
	if err := writeBody(&body, v); err != nil {
		return err
	}

	var header [headerSize]byte
	binary.NativeEndian.PutUint32(header[0:4], uint32(body.Len()))
	binary.NativeEndian.PutUint32(header[4:8], uint32(v.Kind))
	out.Write(header[:])
	out.Write(body.Bytes())
	out.Write(make([]byte, padding(body.Len())))
	return nil
}

// writeBody writes the unpadded body bytes for v's kind.
func writeBody(body *bytes.Buffer, v Value) error {
	switch v.Kind {
	case TypeNone:
		return nil
	case TypeBool:
		return writeU32(body, boolToU32(v.BoolVal))
	case TypeID:
		return writeU32(body, v.IDVal)
	case TypeInt:
		return writeU32(body, uint32(v.IntVal))
	case TypeLong:
		return writeU64(body, uint64(v.LongVal))
	case TypeFloat:
		return writeU32(body, math.Float32bits(v.FloatVal))
	case TypeDouble:
		return writeU64(body, math.Float64bits(v.DoubleVal))
	case TypeString:
		body.WriteString(v.StrVal)
		body.WriteByte(0)
		return nil
	case TypeBytes:
		body.Write(v.BytesVal)
		return nil
	case TypeRectangle:
		if err := writeU32(body, v.RectVal.Width); err != nil {
			return err
		}
		return writeU32(body, v.RectVal.Height)
	case TypeFraction:
		if err := writeU32(body, v.FracVal.Num); err != nil {
			return err
		}
		return writeU32(body, v.FracVal.Denom)
	case TypeFd:
		return writeU64(body, uint64(v.FdVal))
	case TypePointer:
		if err := writeU32(body, v.PtrVal.PtrType); err != nil {
			return err
		}
		if err := writeU32(body, 0); err != nil { // reserved alignment word
			return err
		}
		return writeU64(body, v.PtrVal.Addr)
	case TypeStruct:
		for _, f := range v.Fields {
			if err := writePod(body, f); err != nil {
				return err
			}
		}
		return nil
	case TypeArray:
		return writeArrayBody(body, v)
	case TypeObject:
		return writeObjectBody(body, v)
	case TypeChoice:
		return writeChoiceBody(body, v)
	default:
		return fmt.Errorf("pod: encode: %w: %s", perr.ErrUnsupportedType, v.Kind)
	}
}

// writeArrayBody writes the child element header once, then n packed
// element bodies.
func writeArrayBody(body *bytes.Buffer, v Value) error {
	elemBody, elemSize, err := packedElemBodies(v.Elems, v.ElemType)
	if err != nil {
		return err
	}

	var elemHeader [headerSize]byte
	binary.NativeEndian.PutUint32(elemHeader[0:4], uint32(elemSize))
	binary.NativeEndian.PutUint32(elemHeader[4:8], uint32(v.ElemType))
	body.Write(elemHeader[:])
	body.Write(elemBody)
	return nil
}

// writeObjectBody writes (object_type, object_id) then each property as
// (key, flags, value pod).
func writeObjectBody(body *bytes.Buffer, v Value) error {
	if err := writeU32(body, v.ObjectType); err != nil {
		return err
	}
	if err := writeU32(body, v.ObjectID); err != nil {
		return err
	}
	for _, p := range v.Props {
		if err := writeU32(body, p.Key); err != nil {
			return err
		}
		if err := writeU32(body, p.Flags); err != nil {
			return err
		}
		if err := writePod(body, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// writeChoiceBody writes (choice_type, flags, child_size, child_type)
// then n packed element bodies, the first being the default.
func writeChoiceBody(body *bytes.Buffer, v Value) error {
	elemBody, elemSize, err := packedElemBodies(v.Elems, v.ElemType)
	if err != nil {
		return err
	}
	if err := writeU32(body, uint32(v.ChoiceKind)); err != nil {
		return err
	}
	if err := writeU32(body, v.Flags); err != nil {
		return err
	}
	if err := writeU32(body, uint32(elemSize)); err != nil {
		return err
	}
	if err := writeU32(body, uint32(v.ElemType)); err != nil {
		return err
	}
	body.Write(elemBody)
	return nil
}

// packedElemBodies encodes each elem's body (un-padded, uniform size
// expected) back to back, and returns the per-element body size used in
// the shared child header.
func packedElemBodies(elems []Value, elemType Type) ([]byte, int, error) {
	var out bytes.Buffer
	elemSize := 0
	for i, e := range elems {
		if e.Kind != elemType {
			return nil, 0, fmt.Errorf("pod: encode array/choice element %d: %w: expected %s got %s", i, perr.ErrInvalidType, elemType, e.Kind)
		}
		var b bytes.Buffer
		if err := writeBody(&b, e); err != nil {
			return nil, 0, err
		}
		if i == 0 {
			elemSize = b.Len()
		}
		out.Write(b.Bytes())
	}
	return out.Bytes(), elemSize, nil
}

func writeU32(body *bytes.Buffer, v uint32) error {
	var b [4]byte
	binary.NativeEndian.PutUint32(b[:], v)
	body.Write(b[:])
	return nil
}

func writeU64(body *bytes.Buffer, v uint64) error {
	var b [8]byte
	binary.NativeEndian.PutUint64(b[:], v)
	body.Write(b[:])
	return nil
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
