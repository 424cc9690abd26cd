// Package frame implements PipeWire's wire framing: a fixed 16-byte
// header (id, opcode_size, seq, n_fds) followed by a single outermost
// POD Struct body, and the length-delimited stream decoder that pulls
// whole frames out of a byte stream.
package frame

import (
	"encoding/binary"
	"fmt"

	"pipewire-go-client/perr"
)

// HeaderSize is the fixed size of a frame header: four native-endian
// uint32 words.
const HeaderSize = 16

// MaxOpcodeSizeBody is the largest body size the opcode_size word can
// carry: size occupies the low 24 bits of that word.
const MaxOpcodeSizeBody = 0x00FF_FFFF

// Header is the decoded form of a frame's 16-byte header.
type Header struct {
	ID     int32  // object id, reinterpreted signed on read
	Opcode uint8  // high 8 bits of word 2
	Size   uint32 // low 24 bits of word 2; exact byte length of the body
	Seq    uint32 // sequence number, opaque to the caller otherwise
	NFds   uint32 // count of file descriptors attached via ancillary data
}

// PackOpcodeSize combines an opcode and body size into word 2 of the
// header: (opcode << 24) | (size & 0x00FF_FFFF).
func PackOpcodeSize(opcode uint8, size uint32) (uint32, error) {
	if size > MaxOpcodeSizeBody {
		return 0, fmt.Errorf("frame: body size %d exceeds 24-bit field", size)
	}
	return uint32(opcode)<<24 | (size & MaxOpcodeSizeBody), nil
}

// UnpackOpcodeSize splits word 2 back into its opcode and size halves.
func UnpackOpcodeSize(word uint32) (opcode uint8, size uint32) {
	return uint8(word >> 24), word & MaxOpcodeSizeBody
}

// Pack serializes h into a 16-byte header. Unpacking a packed
// (opcode, size) pair always yields the originals back.
func Pack(h Header) ([HeaderSize]byte, error) {
	var buf [HeaderSize]byte
	word2, err := PackOpcodeSize(h.Opcode, h.Size)
	if err != nil {
		return buf, err
	}
	binary.NativeEndian.PutUint32(buf[0:4], uint32(h.ID))
	binary.NativeEndian.PutUint32(buf[4:8], word2)
	binary.NativeEndian.PutUint32(buf[8:12], h.Seq)
	binary.NativeEndian.PutUint32(buf[12:16], h.NFds)
	return buf, nil
}

// Unpack parses a 16-byte header out of buf.
func Unpack(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, perr.NewParseError("unpack header", perr.ErrFrameTooShort)
	}
	id := int32(binary.NativeEndian.Uint32(buf[0:4]))
	word2 := binary.NativeEndian.Uint32(buf[4:8])
	opcode, size := UnpackOpcodeSize(word2)
	seq := binary.NativeEndian.Uint32(buf[8:12])
	nfds := binary.NativeEndian.Uint32(buf[12:16])
	return Header{ID: id, Opcode: opcode, Size: size, Seq: seq, NFds: nfds}, nil
}
