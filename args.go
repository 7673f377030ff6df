package x86enc

import (
	"fmt"
	"strings"
)

// Arg is an instruction operand: a register, an immediate, a relative branch offset or a
// memory reference.
type Arg interface {
	isArg()
	width() uint8
}

// ImmArg is an immediate operand of a declared width.
//
// An immediate is the bit pattern of its field, emitted verbatim in little-endian order. Where
// the processor widens the field it does so by sign extension: an Imm8 in the 83 group forms
// and an Imm32 with a 64-bit operand both carry the two's-complement value of their top
// bit, so ADD EAX, Imm8(0xFF) adds -1 and ADC RAX, Imm32(0x80000000) adds -0x80000000. Use an
// operand-sized immediate for values that must not be sign extended.
type ImmArg interface {
	Arg
	isImm()
	Uint64() uint64
}

// RelArg is a signed branch offset relative to the end of the instruction.
type RelArg interface {
	Arg
	isRel()
	Int32() int32
}

// Immediates, in two's complement where negative values are meant.
type (
	Imm8  uint8
	Imm16 uint16
	Imm32 uint32
	Imm64 uint64

	Rel8  int8
	Rel16 int16
	Rel32 int32
)

func (Imm8) isArg()  {}
func (Imm16) isArg() {}
func (Imm32) isArg() {}
func (Imm64) isArg() {}
func (Rel8) isArg()  {}
func (Rel16) isArg() {}
func (Rel32) isArg() {}
func (Mem) isArg()   {}

func (Imm8) isImm()  {}
func (Imm16) isImm() {}
func (Imm32) isImm() {}
func (Imm64) isImm() {}

func (Rel8) isRel()  {}
func (Rel16) isRel() {}
func (Rel32) isRel() {}

func (Imm8) width() uint8  { return 1 }
func (Imm16) width() uint8 { return 2 }
func (Imm32) width() uint8 { return 4 }
func (Imm64) width() uint8 { return 8 }
func (Rel8) width() uint8  { return 1 }
func (Rel16) width() uint8 { return 2 }
func (Rel32) width() uint8 { return 4 }
func (m Mem) width() uint8 { return m.Width }

func (i Imm8) Uint64() uint64  { return uint64(i) }
func (i Imm16) Uint64() uint64 { return uint64(i) }
func (i Imm32) Uint64() uint64 { return uint64(i) }
func (i Imm64) Uint64() uint64 { return uint64(i) }

func (r Rel8) Int32() int32  { return int32(r) }
func (r Rel16) Int32() int32 { return int32(r) }
func (r Rel32) Int32() int32 { return int32(r) }

// Mem is a memory reference: Segment:[Base + Index*Scale + Disp].
//
// Width is the size of the referenced data in bytes; it may be left 0 when another
// operand of the instruction determines it. Base and Index must share a width, which
// selects 16, 32 or 64-bit addressing. Segment, when set, emits a segment-override prefix.
type Mem struct {
	Segment Reg
	Base    Reg
	Index   Reg
	Scale   uint8
	Disp    int32
	Width   uint8
}

var ptrNames = [9]string{1: "byte", 2: "word", 4: "dword", 8: "qword"}

func (m Mem) String() string {
	var sb strings.Builder
	if m.Width < 9 && ptrNames[m.Width] != "" {
		sb.WriteString(ptrNames[m.Width])
		sb.WriteString(" ptr ")
	}
	if m.Segment != 0 {
		sb.WriteString(strings.ToLower(m.Segment.String()))
		sb.WriteByte(':')
	}
	sb.WriteByte('[')
	sep := ""
	if m.Base != 0 {
		sb.WriteString(strings.ToLower(m.Base.String()))
		sep = "+"
	}
	if m.Index != 0 {
		sb.WriteString(sep)
		sb.WriteString(strings.ToLower(m.Index.String()))
		if m.Scale > 1 {
			fmt.Fprintf(&sb, "*%d", m.Scale)
		}
		sep = "+"
	}
	switch {
	case m.Disp < 0:
		fmt.Fprintf(&sb, "-%#x", -int64(m.Disp))
	case m.Disp > 0 || sep == "":
		fmt.Fprintf(&sb, "%s%#x", sep, m.Disp)
	}
	sb.WriteByte(']')
	return sb.String()
}

// FormatArg renders an operand in Intel syntax.
func FormatArg(a Arg) string {
	switch a := a.(type) {
	case Reg:
		return strings.ToLower(a.String())
	case ImmArg:
		return fmt.Sprintf("%#x", a.Uint64())
	case RelArg:
		return fmt.Sprintf(".%+#x", a.Int32())
	case Mem:
		return a.String()
	case nil:
		return "<nil>"
	}
	return fmt.Sprintf("%v", a)
}
