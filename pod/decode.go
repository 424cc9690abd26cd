package pod

import (
	"encoding/binary"
	"fmt"
	"math"

	"pipewire-go-client/perr"
)

// Decode reads exactly one complete pod (header, body, padding) from the
// front of data and returns the value plus the number of bytes consumed.
func Decode(data []byte) (Value, int, error) {
	v, n, err := readPod(data)
	if err != nil {
		return Value{}, 0, err
	}
	return v, n, nil
}

// readPod reads the (size, type) header, dispatches to the matching
// body reader, and skips the trailing padding.
func readPod(data []byte) (Value, int, error) {
	if len(data) < headerSize {
		return Value{}, 0, perr.NewParseError("read pod header", perr.ErrFrameTooShort)
	}
	size := binary.NativeEndian.Uint32(data[0:4])
	typ := Type(binary.NativeEndian.Uint32(data[4:8]))

	bodyStart := headerSize
	bodyEnd := bodyStart + int(size)
	if bodyEnd > len(data) {
		return Value{}, 0, perr.NewParseError("read pod body", perr.ErrFrameTooShort)
	}
	body := data[bodyStart:bodyEnd]

	v, err := readBody(typ, body)
	if err != nil {
		return Value{}, 0, err
	}
	total := bodyEnd + padding(int(size))
	if total > len(data) {
		total = len(data)
	}
	return v, total, nil
}

func readBody(typ Type, body []byte) (Value, error) {
	switch typ {
	case TypeNone:
		return None(), nil
	case TypeBool:
		u, err := readU32(body)
		if err != nil {
			return Value{}, err
		}
		return Bool(u != 0), nil
	case TypeID:
		u, err := readU32(body)
		if err != nil {
			return Value{}, err
		}
		return ID(u), nil
	case TypeInt:
		u, err := readU32(body)
		if err != nil {
			return Value{}, err
		}
		return Int(int32(u)), nil
	case TypeLong:
		u, err := readU64(body)
		if err != nil {
			return Value{}, err
		}
		return Long(int64(u)), nil
	case TypeFloat:
		u, err := readU32(body)
		if err != nil {
			return Value{}, err
		}
		return Float(math.Float32frombits(u)), nil
	case TypeDouble:
		u, err := readU64(body)
		if err != nil {
			return Value{}, err
		}
		return Double(math.Float64frombits(u)), nil
	case TypeString:
		s := body
		if n := indexZero(s); n >= 0 {
			s = s[:n]
		}
		return String(string(s)), nil
	case TypeBytes:
		buf := make([]byte, len(body))
		copy(buf, body)
		return Bytes(buf), nil
	case TypeRectangle:
		if len(body) < 8 {
			return Value{}, perr.NewParseError("read rectangle", perr.ErrFrameTooShort)
		}
		w := binary.NativeEndian.Uint32(body[0:4])
		h := binary.NativeEndian.Uint32(body[4:8])
		return Rect(w, h), nil
	case TypeFraction:
		if len(body) < 8 {
			return Value{}, perr.NewParseError("read fraction", perr.ErrFrameTooShort)
		}
		n := binary.NativeEndian.Uint32(body[0:4])
		d := binary.NativeEndian.Uint32(body[4:8])
		return Frac(n, d), nil
	case TypeFd:
		u, err := readU64(body)
		if err != nil {
			return Value{}, err
		}
		return Fd(int64(u)), nil
	case TypePointer:
		if len(body) < 16 {
			return Value{}, perr.NewParseError("read pointer", perr.ErrFrameTooShort)
		}
		ptrType := binary.NativeEndian.Uint32(body[0:4])
		addr := binary.NativeEndian.Uint64(body[8:16])
		return Ptr(ptrType, addr), nil
	case TypeStruct:
		return readStructBody(body)
	case TypeArray:
		return readArrayBody(body)
	case TypeObject:
		return readObjectBody(body)
	case TypeChoice:
		return readChoiceBody(body)
	default:
		return Value{}, fmt.Errorf("pod: decode: %w: code %d", perr.ErrUnsupportedType, uint32(typ))
	}
}

func readStructBody(body []byte) (Value, error) {
	var fields []Value
	off := 0
	for off < len(body) {
		v, n, err := readPod(body[off:])
		if err != nil {
			return Value{}, err
		}
		fields = append(fields, v)
		off += n
	}
	return StructOf(fields...), nil
}

func readArrayBody(body []byte) (Value, error) {
	if len(body) < headerSize {
		return Value{}, perr.NewParseError("read array element header", perr.ErrFrameTooShort)
	}
	elemSize := int(binary.NativeEndian.Uint32(body[0:4]))
	elemType := Type(binary.NativeEndian.Uint32(body[4:8]))

	elems, err := readPackedElems(body[headerSize:], elemType, elemSize)
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: TypeArray, ElemType: elemType, Elems: elems}, nil
}

func readObjectBody(body []byte) (Value, error) {
	if len(body) < 8 {
		return Value{}, perr.NewParseError("read object header", perr.ErrFrameTooShort)
	}
	objType := binary.NativeEndian.Uint32(body[0:4])
	objID := binary.NativeEndian.Uint32(body[4:8])

	var props []Property
	seen := make(map[uint32]struct{})
	off := 8
	for off < len(body) {
		if off+8 > len(body) {
			return Value{}, perr.NewParseError("read object property", perr.ErrFrameTooShort)
		}
		key := binary.NativeEndian.Uint32(body[off : off+4])
		if _, dup := seen[key]; dup {
			return Value{}, fmt.Errorf("pod: decode object: %w: key %d", perr.ErrPropertyWrongKey, key)
		}
		seen[key] = struct{}{}
		flags := binary.NativeEndian.Uint32(body[off+4 : off+8])
		off += 8
		v, n, err := readPod(body[off:])
		if err != nil {
			return Value{}, err
		}
		off += n
		props = append(props, Property{Key: key, Flags: flags, Value: v})
	}
	return ObjectOf(objType, objID, props...), nil
}

func readChoiceBody(body []byte) (Value, error) {
	if len(body) < 16 {
		return Value{}, perr.NewParseError("read choice header", perr.ErrFrameTooShort)
	}
	choiceType := ChoiceType(binary.NativeEndian.Uint32(body[0:4]))
	if choiceType > ChoiceFlags {
		return Value{}, fmt.Errorf("pod: decode choice: %w: code %d", perr.ErrInvalidChoiceType, uint32(choiceType))
	}
	flags := binary.NativeEndian.Uint32(body[4:8])
	elemSize := int(binary.NativeEndian.Uint32(body[8:12]))
	elemType := Type(binary.NativeEndian.Uint32(body[12:16]))

	elems, err := readPackedElems(body[16:], elemType, elemSize)
	if err != nil {
		return Value{}, err
	}
	if len(elems) == 0 {
		return Value{}, perr.ErrMissingChoiceValues
	}
	return Value{Kind: TypeChoice, ChoiceKind: choiceType, Flags: flags, ElemType: elemType, Elems: elems}, nil
}

// readPackedElems splits a packed run of fixed-size element bodies into
// individual Values of elemType.
func readPackedElems(data []byte, elemType Type, elemSize int) ([]Value, error) {
	if elemSize == 0 {
		return nil, nil
	}
	if len(data)%elemSize != 0 {
		return nil, perr.NewParseError("read packed elements", perr.ErrFrameTooShort)
	}
	n := len(data) / elemSize
	elems := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := readBody(elemType, data[i*elemSize:(i+1)*elemSize])
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return elems, nil
}

func readU32(body []byte) (uint32, error) {
	if len(body) < 4 {
		return 0, perr.NewParseError("read u32", perr.ErrFrameTooShort)
	}
	return binary.NativeEndian.Uint32(body[:4]), nil
}

func readU64(body []byte) (uint64, error) {
	if len(body) < 8 {
		return 0, perr.NewParseError("read u64", perr.ErrFrameTooShort)
	}
	return binary.NativeEndian.Uint64(body[:8]), nil
}

func indexZero(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return -1
}
