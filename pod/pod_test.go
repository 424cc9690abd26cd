package pod

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipewire-go-client/perr"
)

// TestRoundTrip checks that deserialize(serialize(v)) == v, for every
// pod kind.
func TestRoundTrip(t *testing.T) {
	cases := map[string]Value{
		"none":      None(),
		"bool":      Bool(true),
		"id":        ID(42),
		"int":       Int(-7),
		"long":      Long(1 << 40),
		"float":     Float(3.5),
		"double":    Double(2.71828),
		"string":    String("application.name"),
		"empty str": String(""),
		"bytes":     Bytes([]byte{1, 2, 3, 4, 5}),
		"rect":      Rect(1920, 1080),
		"frac":      Frac(30, 1),
		"fd":        Fd(3),
		"pointer":   Ptr(7, 0xdeadbeef),
		"struct": StructOf(
			Int(1),
			String("Arith"),
			Bool(false),
		),
		"nested struct": StructOf(
			StructOf(Int(1), Int(2)),
			String("outer"),
		),
		"array": ArrayOf(TypeInt, Int(1), Int(2), Int(3)),
		"object": ObjectOf(5, 0,
			Property{Key: 1, Flags: 0, Value: String("v1")},
			Property{Key: 2, Flags: 0, Value: Int(9)},
		),
		"choice": ChoiceOf(ChoiceEnum, 0, TypeInt, Int(1), Int(2), Int(3)),
	}

	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			encoded, err := Encode(v)
			require.NoError(t, err)
			assert.Zero(t, len(encoded)%8, "encoded length %d is not 8-byte aligned", len(encoded))

			decoded, n, err := Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, len(encoded), n)
			assert.Equal(t, v, decoded)
		})
	}
}

func TestPaddingAlwaysMultipleOf8(t *testing.T) {
	values := []Value{
		String("a"),
		String("ab"),
		String("abc"),
		Bytes([]byte{1}),
		Bytes([]byte{1, 2, 3, 4, 5, 6, 7}),
		Int(1),
	}
	for _, v := range values {
		encoded, err := Encode(v)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if len(encoded)%8 != 0 {
			t.Errorf("Encode(%#v) produced length %d, not a multiple of 8", v, len(encoded))
		}
	}
}

func TestDictRoundTrip(t *testing.T) {
	in := map[string]string{
		"application.name": "test",
		"media.class":      "Audio/Sink",
	}
	encoded := EncodeDict(in)
	out, err := DecodeDict(encoded)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFieldReaderMissingTrailing(t *testing.T) {
	s := StructOf(Int(1))
	fr := NewFieldReader(s)
	if _, err := fr.Int(); err != nil {
		t.Fatalf("unexpected error reading present field: %v", err)
	}
	if _, err := fr.Int(); err == nil {
		t.Fatal("expected PropertyMissing reading past the end of the struct")
	}
}

func TestFieldReaderTrailingExtraTolerated(t *testing.T) {
	s := StructOf(Int(1), Int(2), Int(3))
	fr := NewFieldReader(s)
	if _, err := fr.Int(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fr.Remaining() != 2 {
		t.Errorf("expected 2 fields remaining, got %d", fr.Remaining())
	}
}

func TestInvalidTypeMismatch(t *testing.T) {
	s := StructOf(String("not an int"))
	fr := NewFieldReader(s)
	if _, err := fr.Int(); err == nil {
		t.Fatal("expected InvalidType error reading a string as an int")
	}
}

// rawPod builds a complete (header + body + padding) pod by hand, for
// tests that need to construct a body Decode would otherwise never
// produce via the Value constructors.
func rawPod(typ Type, body []byte) []byte {
	var buf [8]byte
	binary.NativeEndian.PutUint32(buf[0:4], uint32(len(body)))
	binary.NativeEndian.PutUint32(buf[4:8], uint32(typ))
	out := append(buf[:], body...)
	return append(out, make([]byte, padding(len(body)))...)
}

func TestDecodeChoiceRejectsOutOfRangeType(t *testing.T) {
	body := make([]byte, 16)
	binary.NativeEndian.PutUint32(body[0:4], 99) // no ChoiceType enumerates 99
	binary.NativeEndian.PutUint32(body[8:12], 4)
	binary.NativeEndian.PutUint32(body[12:16], uint32(TypeInt))

	_, _, err := Decode(rawPod(TypeChoice, body))
	require.Error(t, err)
	assert.True(t, errors.Is(err, perr.ErrInvalidChoiceType), "got %v, want ErrInvalidChoiceType", err)
}

func TestDecodeObjectRejectsDuplicateKey(t *testing.T) {
	one, err := Encode(Int(1))
	require.NoError(t, err)
	two, err := Encode(Int(2))
	require.NoError(t, err)

	var body []byte
	body = binary.NativeEndian.AppendUint32(body, 5) // object type
	body = binary.NativeEndian.AppendUint32(body, 0) // object id
	body = binary.NativeEndian.AppendUint32(body, 1) // key
	body = binary.NativeEndian.AppendUint32(body, 0) // flags
	body = append(body, one...)
	body = binary.NativeEndian.AppendUint32(body, 1) // same key again
	body = binary.NativeEndian.AppendUint32(body, 0)
	body = append(body, two...)

	_, _, err = Decode(rawPod(TypeObject, body))
	require.Error(t, err)
	assert.True(t, errors.Is(err, perr.ErrPropertyWrongKey), "got %v, want ErrPropertyWrongKey", err)
}
