package x86enc

import "fmt"

// Reg is a register operand. The low nibble holds the architectural code shared by all
// widths of the same slot (AL, AX, EAX and RAX are all 0), bits 8-15 hold the register
// family and bits 16-20 the declared width in bytes.
type Reg uint32

// Register families
const (
	REG_LEGACY   uint8 = iota // general purpose
	REG_RIP                   // instruction pointer, memory base only
	REG_HIGHBYTE              // AH, CH, DH, BH
	REG_SEGMENT
	REG_CONTROL
	REG_DEBUG
)

func (r Reg) isArg() {}

// Family returns the register family.
func (r Reg) Family() uint8 { return uint8(r >> 8) }

// Num returns the register code, 0-15.
func (r Reg) Num() uint8 { return uint8(r) & 0xf }

// Width returns the declared width in bytes.
func (r Reg) Width() uint8 { return uint8(r>>16) & 0x1f }

func (r Reg) width() uint8 { return r.Width() }

// IsExtended reports whether encoding r needs a REX extension bit.
func (r Reg) IsExtended() bool {
	switch r.Family() {
	case REG_LEGACY, REG_CONTROL, REG_DEBUG:
		return r.Num() > 7
	}
	return false
}

// IsGeneral reports whether r is a general purpose register of any width.
func (r Reg) IsGeneral() bool {
	f := r.Family()
	return f == REG_LEGACY || f == REG_HIGHBYTE
}

// needsRex reports whether r can only be addressed with a REX prefix present,
// which holds for SPL, BPL, SIL and DIL in addition to extended registers.
func (r Reg) needsRex() bool {
	return r.IsExtended() || (r.Family() == REG_LEGACY && r.Width() == 1 && r.Num() >= 4)
}

var gpNames = [9][16]string{
	1: {"AL", "CL", "DL", "BL", "SPB", "BPB", "SIB", "DIB", "R8B", "R9B", "R10B", "R11B", "R12B", "R13B", "R14B", "R15B"},
	2: {"AX", "CX", "DX", "BX", "SP", "BP", "SI", "DI", "R8W", "R9W", "R10W", "R11W", "R12W", "R13W", "R14W", "R15W"},
	4: {"EAX", "ECX", "EDX", "EBX", "ESP", "EBP", "ESI", "EDI", "R8L", "R9L", "R10L", "R11L", "R12L", "R13L", "R14L", "R15L"},
	8: {"RAX", "RCX", "RDX", "RBX", "RSP", "RBP", "RSI", "RDI", "R8", "R9", "R10", "R11", "R12", "R13", "R14", "R15"},
}

var segNames = [...]string{"ES", "CS", "SS", "DS", "FS", "GS"}

func (r Reg) String() string {
	n := r.Num()
	switch r.Family() {
	case REG_LEGACY:
		if w := r.Width(); w < 9 && gpNames[w][n] != "" {
			return gpNames[w][n]
		}
	case REG_RIP:
		return "RIP"
	case REG_HIGHBYTE:
		if n >= 4 && n < 8 {
			return [...]string{"AH", "CH", "DH", "BH"}[n-4]
		}
	case REG_SEGMENT:
		if int(n) < len(segNames) {
			return segNames[n]
		}
	case REG_CONTROL:
		return fmt.Sprintf("CR%d", n)
	case REG_DEBUG:
		return fmt.Sprintf("DR%d", n)
	}
	return fmt.Sprintf("Reg(%#x)", uint32(r))
}

func reg(width, family, num uint8) Reg {
	return Reg(uint32(width)<<16 | uint32(family)<<8 | uint32(num))
}

// 8-bit general purpose registers
const (
	AL   Reg = 1<<16 | Reg(REG_LEGACY)<<8 | 0
	CL   Reg = 1<<16 | Reg(REG_LEGACY)<<8 | 1
	DL   Reg = 1<<16 | Reg(REG_LEGACY)<<8 | 2
	BL   Reg = 1<<16 | Reg(REG_LEGACY)<<8 | 3
	SPB  Reg = 1<<16 | Reg(REG_LEGACY)<<8 | 4
	BPB  Reg = 1<<16 | Reg(REG_LEGACY)<<8 | 5
	SIB  Reg = 1<<16 | Reg(REG_LEGACY)<<8 | 6
	DIB  Reg = 1<<16 | Reg(REG_LEGACY)<<8 | 7
	R8B  Reg = 1<<16 | Reg(REG_LEGACY)<<8 | 8
	R9B  Reg = 1<<16 | Reg(REG_LEGACY)<<8 | 9
	R10B Reg = 1<<16 | Reg(REG_LEGACY)<<8 | 10
	R11B Reg = 1<<16 | Reg(REG_LEGACY)<<8 | 11
	R12B Reg = 1<<16 | Reg(REG_LEGACY)<<8 | 12
	R13B Reg = 1<<16 | Reg(REG_LEGACY)<<8 | 13
	R14B Reg = 1<<16 | Reg(REG_LEGACY)<<8 | 14
	R15B Reg = 1<<16 | Reg(REG_LEGACY)<<8 | 15

	AH Reg = 1<<16 | Reg(REG_HIGHBYTE)<<8 | 4
	CH Reg = 1<<16 | Reg(REG_HIGHBYTE)<<8 | 5
	DH Reg = 1<<16 | Reg(REG_HIGHBYTE)<<8 | 6
	BH Reg = 1<<16 | Reg(REG_HIGHBYTE)<<8 | 7
)

// 16-bit general purpose registers
const (
	AX   Reg = 2<<16 | Reg(REG_LEGACY)<<8 | 0
	CX   Reg = 2<<16 | Reg(REG_LEGACY)<<8 | 1
	DX   Reg = 2<<16 | Reg(REG_LEGACY)<<8 | 2
	BX   Reg = 2<<16 | Reg(REG_LEGACY)<<8 | 3
	SP   Reg = 2<<16 | Reg(REG_LEGACY)<<8 | 4
	BP   Reg = 2<<16 | Reg(REG_LEGACY)<<8 | 5
	SI   Reg = 2<<16 | Reg(REG_LEGACY)<<8 | 6
	DI   Reg = 2<<16 | Reg(REG_LEGACY)<<8 | 7
	R8W  Reg = 2<<16 | Reg(REG_LEGACY)<<8 | 8
	R9W  Reg = 2<<16 | Reg(REG_LEGACY)<<8 | 9
	R10W Reg = 2<<16 | Reg(REG_LEGACY)<<8 | 10
	R11W Reg = 2<<16 | Reg(REG_LEGACY)<<8 | 11
	R12W Reg = 2<<16 | Reg(REG_LEGACY)<<8 | 12
	R13W Reg = 2<<16 | Reg(REG_LEGACY)<<8 | 13
	R14W Reg = 2<<16 | Reg(REG_LEGACY)<<8 | 14
	R15W Reg = 2<<16 | Reg(REG_LEGACY)<<8 | 15
)

// 32-bit general purpose registers
const (
	EAX  Reg = 4<<16 | Reg(REG_LEGACY)<<8 | 0
	ECX  Reg = 4<<16 | Reg(REG_LEGACY)<<8 | 1
	EDX  Reg = 4<<16 | Reg(REG_LEGACY)<<8 | 2
	EBX  Reg = 4<<16 | Reg(REG_LEGACY)<<8 | 3
	ESP  Reg = 4<<16 | Reg(REG_LEGACY)<<8 | 4
	EBP  Reg = 4<<16 | Reg(REG_LEGACY)<<8 | 5
	ESI  Reg = 4<<16 | Reg(REG_LEGACY)<<8 | 6
	EDI  Reg = 4<<16 | Reg(REG_LEGACY)<<8 | 7
	R8L  Reg = 4<<16 | Reg(REG_LEGACY)<<8 | 8
	R9L  Reg = 4<<16 | Reg(REG_LEGACY)<<8 | 9
	R10L Reg = 4<<16 | Reg(REG_LEGACY)<<8 | 10
	R11L Reg = 4<<16 | Reg(REG_LEGACY)<<8 | 11
	R12L Reg = 4<<16 | Reg(REG_LEGACY)<<8 | 12
	R13L Reg = 4<<16 | Reg(REG_LEGACY)<<8 | 13
	R14L Reg = 4<<16 | Reg(REG_LEGACY)<<8 | 14
	R15L Reg = 4<<16 | Reg(REG_LEGACY)<<8 | 15
)

// 64-bit general purpose registers
const (
	RAX Reg = 8<<16 | Reg(REG_LEGACY)<<8 | 0
	RCX Reg = 8<<16 | Reg(REG_LEGACY)<<8 | 1
	RDX Reg = 8<<16 | Reg(REG_LEGACY)<<8 | 2
	RBX Reg = 8<<16 | Reg(REG_LEGACY)<<8 | 3
	RSP Reg = 8<<16 | Reg(REG_LEGACY)<<8 | 4
	RBP Reg = 8<<16 | Reg(REG_LEGACY)<<8 | 5
	RSI Reg = 8<<16 | Reg(REG_LEGACY)<<8 | 6
	RDI Reg = 8<<16 | Reg(REG_LEGACY)<<8 | 7
	R8  Reg = 8<<16 | Reg(REG_LEGACY)<<8 | 8
	R9  Reg = 8<<16 | Reg(REG_LEGACY)<<8 | 9
	R10 Reg = 8<<16 | Reg(REG_LEGACY)<<8 | 10
	R11 Reg = 8<<16 | Reg(REG_LEGACY)<<8 | 11
	R12 Reg = 8<<16 | Reg(REG_LEGACY)<<8 | 12
	R13 Reg = 8<<16 | Reg(REG_LEGACY)<<8 | 13
	R14 Reg = 8<<16 | Reg(REG_LEGACY)<<8 | 14
	R15 Reg = 8<<16 | Reg(REG_LEGACY)<<8 | 15

	RIP Reg = 8<<16 | Reg(REG_RIP)<<8 | 0
)

// Segment registers
const (
	ES Reg = 2<<16 | Reg(REG_SEGMENT)<<8 | 0
	CS Reg = 2<<16 | Reg(REG_SEGMENT)<<8 | 1
	SS Reg = 2<<16 | Reg(REG_SEGMENT)<<8 | 2
	DS Reg = 2<<16 | Reg(REG_SEGMENT)<<8 | 3
	FS Reg = 2<<16 | Reg(REG_SEGMENT)<<8 | 4
	GS Reg = 2<<16 | Reg(REG_SEGMENT)<<8 | 5
)

// Control registers
const (
	CR0 Reg = 4<<16 | Reg(REG_CONTROL)<<8 | 0
	CR2 Reg = 4<<16 | Reg(REG_CONTROL)<<8 | 2
	CR3 Reg = 4<<16 | Reg(REG_CONTROL)<<8 | 3
	CR4 Reg = 4<<16 | Reg(REG_CONTROL)<<8 | 4
	CR8 Reg = 4<<16 | Reg(REG_CONTROL)<<8 | 8
)

// Debug registers
const (
	DR0 Reg = 4<<16 | Reg(REG_DEBUG)<<8 | 0
	DR1 Reg = 4<<16 | Reg(REG_DEBUG)<<8 | 1
	DR2 Reg = 4<<16 | Reg(REG_DEBUG)<<8 | 2
	DR3 Reg = 4<<16 | Reg(REG_DEBUG)<<8 | 3
	DR4 Reg = 4<<16 | Reg(REG_DEBUG)<<8 | 4
	DR5 Reg = 4<<16 | Reg(REG_DEBUG)<<8 | 5
	DR6 Reg = 4<<16 | Reg(REG_DEBUG)<<8 | 6
	DR7 Reg = 4<<16 | Reg(REG_DEBUG)<<8 | 7
)

// Registers returns every named register.
func Registers() []Reg {
	regs := make([]Reg, 0, 96)
	for _, w := range [...]uint8{1, 2, 4, 8} {
		for n := uint8(0); n < 16; n++ {
			regs = append(regs, reg(w, REG_LEGACY, n))
		}
	}
	regs = append(regs, AH, CH, DH, BH, RIP, ES, CS, SS, DS, FS, GS, CR0, CR2, CR3, CR4, CR8)
	for n := uint8(0); n < 8; n++ {
		regs = append(regs, reg(4, REG_DEBUG, n))
	}
	return regs
}
