package x86enc

import (
	"github.com/umbrellaos/x86enc/bitseq"
)

type buffer struct {
	b []byte
}

func newBuffer(b []byte) *buffer {
	return &buffer{b[:0]}
}

func (b *buffer) Len() int    { return len(b.b) }
func (b *buffer) Get() []byte { return b.b }
func (b *buffer) Reset()      { b.b = b.b[:0] }

func (b *buffer) Byte(v byte) { b.b = append(b.b, v) }

func (b *buffer) Bytes(v []byte) { b.b = append(b.b, v...) }

func (b *buffer) Uint16(v uint16) { b.Bytes(bitseq.PutUint16(v)) }
func (b *buffer) Uint32(v uint32) { b.Bytes(bitseq.PutUint32(v)) }
func (b *buffer) Uint64(v uint64) { b.Bytes(bitseq.PutUint64(v)) }

// Imm appends v in little-endian order using width bytes.
func (b *buffer) Imm(v uint64, width uint8) {
	switch width {
	case 1:
		b.Byte(byte(v))
	case 2:
		b.Uint16(uint16(v))
	case 4:
		b.Uint32(uint32(v))
	case 8:
		b.Uint64(v)
	}
}

// multi-byte NOPs, indexed by length; valid with 32 and 64-bit addressing
var nops = [10][]byte{
	1: {0x90},
	2: {0x66, 0x90},
	3: {0x0F, 0x1F, 0x00},
	4: {0x0F, 0x1F, 0x40, 0x00},
	5: {0x0F, 0x1F, 0x44, 0x00, 0x00},
	6: {0x66, 0x0F, 0x1F, 0x44, 0x00, 0x00},
	7: {0x0F, 0x1F, 0x80, 0x00, 0x00, 0x00, 0x00},
	8: {0x0F, 0x1F, 0x84, 0x00, 0x00, 0x00, 0x00, 0x00},
	9: {0x66, 0x0F, 0x1F, 0x84, 0x00, 0x00, 0x00, 0x00, 0x00},
}

// Nop appends n bytes of padding as the fewest NOP instructions. With 16-bit addressing
// the long forms decode differently, so only single-byte NOPs are used.
func (b *buffer) Nop(n int, addrSize uint8) {
	if addrSize == 2 {
		for ; n > 0; n-- {
			b.Byte(0x90)
		}
		return
	}
	for n > 0 {
		sz := n
		if sz > 9 {
			sz = 9
		}
		b.Bytes(nops[sz])
		n -= sz
	}
}
