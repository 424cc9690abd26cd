// Package pod implements the PipeWire POD ("Plain Old Data") type system:
// a self-describing, 8-byte-aligned binary encoding for a small set of
// primitive and composite value kinds.
//
// Every pod begins with an 8-byte header (size uint32, type uint32)
// followed by size bytes of body, padded with zeroes to a multiple of 8.
// The header's size field counts body bytes only.
package pod

import "fmt"

// Type is the wire type code carried in every pod header.
type Type uint32

// Primitive and composite type codes. Codes follow the PipeWire native
// protocol numbering; gaps (12, 16, 20) are reserved for
// Bitmap/Sequence/Pod-of-Pod, which this client does not model as
// distinct Go types and which therefore decode via ErrUnsupportedType
// if ever encountered on the wire.
const (
	TypeNone      Type = 1
	TypeBool      Type = 2
	TypeID        Type = 3
	TypeInt       Type = 4
	TypeLong      Type = 5
	TypeFloat     Type = 6
	TypeDouble    Type = 7
	TypeString    Type = 8
	TypeBytes     Type = 9
	TypeRectangle Type = 10
	TypeFraction  Type = 11
	TypeArray     Type = 13
	TypeStruct    Type = 14
	TypeObject    Type = 15
	TypePointer   Type = 17
	TypeFd        Type = 18
	TypeChoice    Type = 19
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "None"
	case TypeBool:
		return "Bool"
	case TypeID:
		return "Id"
	case TypeInt:
		return "Int"
	case TypeLong:
		return "Long"
	case TypeFloat:
		return "Float"
	case TypeDouble:
		return "Double"
	case TypeString:
		return "String"
	case TypeBytes:
		return "Bytes"
	case TypeRectangle:
		return "Rectangle"
	case TypeFraction:
		return "Fraction"
	case TypeArray:
		return "Array"
	case TypeStruct:
		return "Struct"
	case TypeObject:
		return "Object"
	case TypePointer:
		return "Pointer"
	case TypeFd:
		return "Fd"
	case TypeChoice:
		return "Choice"
	default:
		return fmt.Sprintf("Type(%d)", uint32(t))
	}
}

// ChoiceType selects the interpretation of a Choice pod's element list.
type ChoiceType uint32

const (
	ChoiceNone ChoiceType = iota
	ChoiceRange
	ChoiceStep
	ChoiceEnum
	ChoiceFlags
)

// Rectangle is the (width, height) primitive pod body.
type Rectangle struct {
	Width  uint32
	Height uint32
}

// Fraction is the (num, denom) primitive pod body.
type Fraction struct {
	Num   uint32
	Denom uint32
}

// Property is a single (key, flags, value) entry inside an Object pod.
type Property struct {
	Key   uint32
	Flags uint32
	Value Value
}

// Pointer is an opaque (type, address) pair; the core never dereferences
// it, only threads it through encode/decode.
type Pointer struct {
	PtrType uint32
	Addr    uint64
}
