package pod

// Value is a tagged union over the pod type system. Exactly the fields
// relevant to Kind are meaningful; the zero Value is None.
type Value struct {
	Kind Type

	BoolVal   bool
	IDVal     uint32
	IntVal    int32
	LongVal   int64
	FloatVal  float32
	DoubleVal float64
	StrVal    string
	BytesVal  []byte
	RectVal   Rectangle
	FracVal   Fraction
	FdVal     int64
	PtrVal    Pointer

	// Array: homogeneous elements, ElemType names the shared child type.
	ElemType Type
	Elems    []Value

	// Struct: heterogeneous elements in declared order.
	Fields []Value

	// Object.
	ObjectType uint32
	ObjectID   uint32
	Props      []Property

	// Choice.
	ChoiceKind ChoiceType
	Flags      uint32
}

// None is the canonical empty pod value.
func None() Value { return Value{Kind: TypeNone} }

// Bool wraps a boolean pod value.
func Bool(b bool) Value { return Value{Kind: TypeBool, BoolVal: b} }

// ID wraps an enumerated u32 id pod value.
func ID(v uint32) Value { return Value{Kind: TypeID, IDVal: v} }

// Int wraps a signed 32-bit pod value.
func Int(v int32) Value { return Value{Kind: TypeInt, IntVal: v} }

// Long wraps a signed 64-bit pod value.
func Long(v int64) Value { return Value{Kind: TypeLong, LongVal: v} }

// Float wraps a 32-bit float pod value.
func Float(v float32) Value { return Value{Kind: TypeFloat, FloatVal: v} }

// Double wraps a 64-bit float pod value.
func Double(v float64) Value { return Value{Kind: TypeDouble, DoubleVal: v} }

// String wraps a NUL-terminated string pod value.
func String(s string) Value { return Value{Kind: TypeString, StrVal: s} }

// Bytes wraps a raw byte-string pod value.
func Bytes(b []byte) Value { return Value{Kind: TypeBytes, BytesVal: b} }

// Rect wraps a Rectangle pod value.
func Rect(w, h uint32) Value { return Value{Kind: TypeRectangle, RectVal: Rectangle{Width: w, Height: h}} }

// Frac wraps a Fraction pod value.
func Frac(num, denom uint32) Value {
	return Value{Kind: TypeFraction, FracVal: Fraction{Num: num, Denom: denom}}
}

// Fd wraps a file-descriptor index pod value.
func Fd(index int64) Value { return Value{Kind: TypeFd, FdVal: index} }

// Ptr wraps an opaque (type, address) pod value.
func Ptr(ptrType uint32, addr uint64) Value {
	return Value{Kind: TypePointer, PtrVal: Pointer{PtrType: ptrType, Addr: addr}}
}

// ArrayOf builds an Array-of-primitive pod value. All elems must share
// elemType; the caller is responsible for that invariant.
func ArrayOf(elemType Type, elems ...Value) Value {
	return Value{Kind: TypeArray, ElemType: elemType, Elems: elems}
}

// StructOf builds a Struct pod value from an ordered field list,
// following the derivation protocol's encode order.
func StructOf(fields ...Value) Value {
	return Value{Kind: TypeStruct, Fields: fields}
}

// ObjectOf builds an Object pod value.
func ObjectOf(objectType, objectID uint32, props ...Property) Value {
	return Value{Kind: TypeObject, ObjectType: objectType, ObjectID: objectID, Props: props}
}

// ChoiceOf builds a Choice pod value; elems[0] is the default.
func ChoiceOf(kind ChoiceType, flags uint32, elemType Type, elems ...Value) Value {
	return Value{Kind: TypeChoice, ChoiceKind: kind, Flags: flags, ElemType: elemType, Elems: elems}
}
