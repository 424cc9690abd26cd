package pod

import "pipewire-go-client/perr"

// FieldReader walks an ordered Struct field list to implement the
// derivation protocol's decode half: fields are pulled in declared
// order, a read past the end is PropertyMissing, and trailing unread
// fields are tolerated.
type FieldReader struct {
	fields []Value
	idx    int
}

// NewFieldReader returns a reader over s's fields. s must be a Struct
// value; a non-Struct value yields a reader with zero fields.
func NewFieldReader(s Value) *FieldReader {
	if s.Kind != TypeStruct {
		return &FieldReader{}
	}
	return &FieldReader{fields: s.Fields}
}

// Remaining reports how many fields have not yet been consumed. Any
// nonzero value after a decode finishes is a tolerated protocol
// extension, never an error.
func (f *FieldReader) Remaining() int {
	return len(f.fields) - f.idx
}

func (f *FieldReader) next() (Value, error) {
	if f.idx >= len(f.fields) {
		return Value{}, perr.ErrPropertyMissing
	}
	v := f.fields[f.idx]
	f.idx++
	return v, nil
}

func (f *FieldReader) typed(want Type) (Value, error) {
	v, err := f.next()
	if err != nil {
		return Value{}, err
	}
	if v.Kind != want {
		return Value{}, perr.ErrInvalidType
	}
	return v, nil
}

// Any returns the next field regardless of type.
func (f *FieldReader) Any() (Value, error) { return f.next() }

func (f *FieldReader) Bool() (bool, error) {
	v, err := f.typed(TypeBool)
	return v.BoolVal, err
}

func (f *FieldReader) ID() (uint32, error) {
	v, err := f.typed(TypeID)
	return v.IDVal, err
}

func (f *FieldReader) Int() (int32, error) {
	v, err := f.typed(TypeInt)
	return v.IntVal, err
}

func (f *FieldReader) Long() (int64, error) {
	v, err := f.typed(TypeLong)
	return v.LongVal, err
}

func (f *FieldReader) Float() (float32, error) {
	v, err := f.typed(TypeFloat)
	return v.FloatVal, err
}

func (f *FieldReader) Double() (float64, error) {
	v, err := f.typed(TypeDouble)
	return v.DoubleVal, err
}

func (f *FieldReader) String() (string, error) {
	v, err := f.typed(TypeString)
	return v.StrVal, err
}

func (f *FieldReader) Bytes() ([]byte, error) {
	v, err := f.typed(TypeBytes)
	return v.BytesVal, err
}

func (f *FieldReader) Rectangle() (Rectangle, error) {
	v, err := f.typed(TypeRectangle)
	return v.RectVal, err
}

func (f *FieldReader) Fraction() (Fraction, error) {
	v, err := f.typed(TypeFraction)
	return v.FracVal, err
}

func (f *FieldReader) Fd() (int64, error) {
	v, err := f.typed(TypeFd)
	return v.FdVal, err
}

func (f *FieldReader) Struct() (Value, error) { return f.typed(TypeStruct) }
func (f *FieldReader) Object() (Value, error) { return f.typed(TypeObject) }
func (f *FieldReader) Array() (Value, error)  { return f.typed(TypeArray) }
func (f *FieldReader) Choice() (Value, error) { return f.typed(TypeChoice) }

// StructBuilder assembles an ordered field list for the derivation
// protocol's encode half: serialization opens a Struct, emits each
// field in declared order, then closes it.
type StructBuilder struct {
	fields []Value
}

// NewStructBuilder returns an empty builder.
func NewStructBuilder() *StructBuilder { return &StructBuilder{} }

func (b *StructBuilder) Add(v Value) *StructBuilder {
	b.fields = append(b.fields, v)
	return b
}

func (b *StructBuilder) Bool(v bool) *StructBuilder          { return b.Add(Bool(v)) }
func (b *StructBuilder) ID(v uint32) *StructBuilder          { return b.Add(ID(v)) }
func (b *StructBuilder) Int(v int32) *StructBuilder          { return b.Add(Int(v)) }
func (b *StructBuilder) Long(v int64) *StructBuilder         { return b.Add(Long(v)) }
func (b *StructBuilder) Float(v float32) *StructBuilder      { return b.Add(Float(v)) }
func (b *StructBuilder) Double(v float64) *StructBuilder     { return b.Add(Double(v)) }
func (b *StructBuilder) String(v string) *StructBuilder      { return b.Add(String(v)) }
func (b *StructBuilder) Bytes(v []byte) *StructBuilder       { return b.Add(Bytes(v)) }
func (b *StructBuilder) Rectangle(w, h uint32) *StructBuilder { return b.Add(Rect(w, h)) }
func (b *StructBuilder) Fraction(n, d uint32) *StructBuilder { return b.Add(Frac(n, d)) }
func (b *StructBuilder) Fd(v int64) *StructBuilder           { return b.Add(Fd(v)) }

// Build closes the struct and returns the assembled pod value.
func (b *StructBuilder) Build() Value { return StructOf(b.fields...) }
