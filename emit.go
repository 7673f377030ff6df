package x86enc

import (
	"github.com/umbrellaos/x86enc/bitseq"
)

const (
	modNoDisp uint8 = 0 // mod = 00, no displacement
	modDisp8  uint8 = 1 // mod = 01, 8-bit displacement
	modDisp32 uint8 = 2 // mod = 10, 16/32-bit displacement
	modDirect uint8 = 3 // mod = 11, register operand
)

var (
	rmSIB    = bitseq.MustField(4, 3) // r/m = 100: SIB byte follows
	rmDisp32 = bitseq.MustField(5, 3) // r/m = 101 with mod 00: disp32 (RIP-relative in long mode)
	rmDisp16 = bitseq.MustField(6, 3) // r/m = 110 with mod 00 and 16-bit addressing: disp16
	noIndex  = bitseq.MustField(4, 3) // SIB.index = 100: none
	noBase   = bitseq.MustField(5, 3) // SIB.base = 101 with mod 00: disp32
)

var scaleBits = map[uint8]uint8{1: 0, 2: 1, 4: 2, 8: 3}

func fitsInt8(v int32) bool { return v >= -128 && v <= 127 }

// dispMod picks the shortest displacement for disp; forceDisp is set for bases whose
// mod-00 encoding means something else (BP/EBP/RBP/R13).
func dispMod(disp int32, forceDisp bool) uint8 {
	switch {
	case disp == 0 && !forceDisp:
		return modNoDisp
	case fitsInt8(disp):
		return modDisp8
	}
	return modDisp32
}

func emitDisp(buf *buffer, mod uint8, disp int32, addrSize uint8) {
	switch {
	case mod == modDisp8:
		buf.Byte(byte(int8(disp)))
	case mod == modDisp32 && addrSize == 2:
		buf.Uint16(uint16(disp))
	case mod == modDisp32:
		buf.Uint32(uint32(disp))
	}
}

// emitMem emits ModR/M, SIB and displacement for a memory operand already checked by sanitizeMem.
func (e *encoding) emitMem(buf *buffer) {
	mem := &e.mem
	b, i, disp := mem.Base, mem.Index, mem.Disp

	if e.addrSize == 2 {
		if b == 0 && i == 0 {
			buf.Byte(modRM(modNoDisp, e.regFld, rmDisp16))
			buf.Uint16(uint16(disp))
			return
		}
		mod := dispMod(disp, e.rm16 == 6)
		buf.Byte(modRM(mod, e.regFld, bitseq.MustField(e.rm16, 3)))
		emitDisp(buf, mod, disp, 2)
		return
	}

	switch {
	case b.Family() == REG_RIP && b != 0:
		buf.Byte(modRM(modNoDisp, e.regFld, rmDisp32))
		buf.Uint32(uint32(disp))

	case b == 0 && i == 0:
		// in long mode, r/m = 101 is RIP-relative, so absolute addresses need a SIB byte
		if e.mode == Long64 {
			buf.Byte(modRM(modNoDisp, e.regFld, rmSIB))
			buf.Byte(sib(0, noIndex, noBase))
		} else {
			buf.Byte(modRM(modNoDisp, e.regFld, rmDisp32))
		}
		buf.Uint32(uint32(disp))

	case b == 0:
		buf.Byte(modRM(modNoDisp, e.regFld, rmSIB))
		buf.Byte(sib(scaleBits[mem.Scale], EncodeRegister3(i), noBase))
		buf.Uint32(uint32(disp))

	case i != 0 || b.Num()&7 == 4:
		// RSP/R12 as base, or any index: SIB form
		mod := dispMod(disp, b.Num()&7 == 5)
		index := noIndex
		if i != 0 {
			index = EncodeRegister3(i)
		}
		buf.Byte(modRM(mod, e.regFld, rmSIB))
		buf.Byte(sib(scaleBits[mem.Scale], index, EncodeRegister3(b)))
		emitDisp(buf, mod, disp, e.addrSize)

	default:
		// RBP/R13 as base just requires a mandatory disp8
		mod := dispMod(disp, b.Num()&7 == 5)
		buf.Byte(modRM(mod, e.regFld, EncodeRegister3(b)))
		emitDisp(buf, mod, disp, e.addrSize)
	}
}
