package x86enc

import (
	"fmt"

	"golang.org/x/xerrors"

	"github.com/umbrellaos/x86enc/bitseq"
)

// OperandSize is the width class of an operand.
type OperandSize uint8

const (
	Size8  OperandSize = 1
	Size16 OperandSize = 2
	Size32 OperandSize = 4
	Size64 OperandSize = 8
)

func (s OperandSize) String() string {
	switch s {
	case Size8, Size16, Size32, Size64:
		return fmt.Sprintf("%d-bit", int(s)*8)
	}
	return fmt.Sprintf("OperandSize(%d)", uint8(s))
}

// SignExtend selects whether an immediate is sign-extended to the destination width.
type SignExtend uint8

const (
	NoSignExtend SignExtend = iota
	SignExtendImm8
)

// Direction is the d bit of two-operand opcodes.
type Direction uint8

const (
	// RegToRM: the ModR/M.reg operand is the source.
	RegToRM Direction = iota
	// RMToReg: the ModR/M.reg operand is the destination.
	RMToReg
)

// EncodeRegister3 returns the 3-bit code of r, most-significant bit first. For R8-R15 and
// CR8 the fourth bit is carried separately by REX.
func EncodeRegister3(r Reg) bitseq.Seq {
	return bitseq.MustField(r.Num()&7, 3)
}

// EncodeSegmentRegister2 returns the 2-bit sreg field used by the one-byte PUSH/POP forms.
// Only ES, CS, SS and DS fit.
func EncodeSegmentRegister2(r Reg) (bitseq.Seq, error) {
	if r.Family() != REG_SEGMENT {
		return nil, xerrors.Errorf("%v is not a segment register: %w", r, ErrUnsupported)
	}
	if r.Num() > 3 {
		return nil, xerrors.Errorf("%v in 2-bit segment field: %w", r, ErrNotRepresentable)
	}
	return bitseq.MustField(r.Num(), 2), nil
}

// EncodeSegmentRegister3 returns the 3-bit sreg field.
func EncodeSegmentRegister3(r Reg) (bitseq.Seq, error) {
	if r.Family() != REG_SEGMENT || r.Num() > 5 {
		return nil, xerrors.Errorf("%v is not a segment register: %w", r, ErrUnsupported)
	}
	return bitseq.MustField(r.Num(), 3), nil
}

// EncodeSpecialRegister3 returns the eee field of a control or debug register.
func EncodeSpecialRegister3(r Reg) (bitseq.Seq, error) {
	if f := r.Family(); f != REG_CONTROL && f != REG_DEBUG {
		return nil, xerrors.Errorf("%v is not a control or debug register: %w", r, ErrUnsupported)
	}
	return bitseq.MustField(r.Num()&7, 3), nil
}

// OperandSizeOf classifies a general purpose register by width.
func OperandSizeOf(r Reg) (OperandSize, error) {
	if !r.IsGeneral() {
		return 0, xerrors.Errorf("%v is not a general purpose register: %w", r, ErrUnsupported)
	}
	switch s := OperandSize(r.Width()); s {
	case Size8, Size16, Size32, Size64:
		return s, nil
	}
	return 0, xerrors.Errorf("%v has width %d: %w", r, r.Width(), ErrUnsupported)
}

// WBit returns 0 for byte operations and 1 for every wider size.
func WBit(s OperandSize) bitseq.Bit {
	return bitseq.BitOf(s != Size8)
}

// SignExtendBit returns the s bit: set only when sign extension is requested for an 8-bit immediate.
func SignExtendBit(se SignExtend, immWidth OperandSize) bitseq.Bit {
	return bitseq.BitOf(se == SignExtendImm8 && immWidth == Size8)
}

// DirectionBit returns the d bit.
func DirectionBit(d Direction) bitseq.Bit {
	return bitseq.BitOf(d == RMToReg)
}

// ConditionBits returns the 4-bit tttn field of a condition test.
func ConditionBits(cc ConditionTest) (bitseq.Seq, error) {
	if cc > 0xf {
		return nil, xerrors.Errorf("condition test %d: %w", uint8(cc), ErrUnsupported)
	}
	return bitseq.MustField(uint8(cc), 4), nil
}

// regField returns the 3-bit ModR/M.reg encoding of any register that can occupy it.
func regField(r Reg) (bitseq.Seq, error) {
	switch r.Family() {
	case REG_LEGACY, REG_HIGHBYTE:
		return EncodeRegister3(r), nil
	case REG_SEGMENT:
		return EncodeSegmentRegister3(r)
	case REG_CONTROL, REG_DEBUG:
		return EncodeSpecialRegister3(r)
	}
	return nil, xerrors.Errorf("%v in ModR/M field: %w", r, ErrUnsupported)
}

func mustByte(s bitseq.Seq) byte {
	b, err := s.Byte()
	if err != nil {
		panic(err)
	}
	return b
}

// modRM packs mod:2 reg:3 rm:3.
func modRM(mod uint8, reg, rm bitseq.Seq) byte {
	return mustByte(bitseq.Concat(bitseq.MustField(mod, 2), reg, rm))
}

// sib packs scale:2 index:3 base:3.
func sib(scale uint8, index, base bitseq.Seq) byte {
	return mustByte(bitseq.Concat(bitseq.MustField(scale, 2), index, base))
}
