package x86enc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/umbrellaos/x86enc/bitseq"
)

func field(t *testing.T, s bitseq.Seq) uint8 {
	t.Helper()
	v, err := s.Uint()
	require.NoError(t, err)
	return v
}

func TestEncodeRegister3(t *testing.T) {
	// registers sharing a code differ only in width or REX
	for _, group := range [][]Reg{
		{AL, AX, EAX, RAX, R8B, R8W, R8L, R8},
		{CL, CX, ECX, RCX, R9},
		{AH, SPB, SP, ESP, RSP, R12},
		{BH, DIB, DI, EDI, RDI, R15},
	} {
		want := field(t, EncodeRegister3(group[0]))
		for _, r := range group[1:] {
			require.Equal(t, want, field(t, EncodeRegister3(r)), "%v", r)
		}
	}
	require.Equal(t, uint8(5), field(t, EncodeRegister3(CH)))
	require.Equal(t, uint8(6), field(t, EncodeRegister3(R14W)))
	require.Len(t, EncodeRegister3(R13), 3)
}

func TestEncodeSegmentRegister(t *testing.T) {
	for i, r := range []Reg{ES, CS, SS, DS} {
		s, err := EncodeSegmentRegister2(r)
		require.NoError(t, err)
		require.Len(t, s, 2)
		require.Equal(t, uint8(i), field(t, s))
	}
	for _, r := range []Reg{FS, GS} {
		_, err := EncodeSegmentRegister2(r)
		require.ErrorIs(t, err, ErrNotRepresentable)
	}
	_, err := EncodeSegmentRegister2(EAX)
	require.ErrorIs(t, err, ErrUnsupported)

	for i, r := range []Reg{ES, CS, SS, DS, FS, GS} {
		s, err := EncodeSegmentRegister3(r)
		require.NoError(t, err)
		require.Len(t, s, 3)
		require.Equal(t, uint8(i), field(t, s))
	}
	_, err = EncodeSegmentRegister3(CR0)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestEncodeSpecialRegister3(t *testing.T) {
	s, err := EncodeSpecialRegister3(CR3)
	require.NoError(t, err)
	require.Equal(t, uint8(3), field(t, s))

	s, err = EncodeSpecialRegister3(CR8)
	require.NoError(t, err)
	require.Equal(t, uint8(0), field(t, s))
	require.True(t, CR8.IsExtended())

	s, err = EncodeSpecialRegister3(DR6)
	require.NoError(t, err)
	require.Equal(t, uint8(6), field(t, s))

	_, err = EncodeSpecialRegister3(ES)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestOperandSizeOf(t *testing.T) {
	for r, want := range map[Reg]OperandSize{
		AL: Size8, AH: Size8, SIB: Size8, R15B: Size8,
		BP: Size16, R9W: Size16,
		EDX: Size32, R10L: Size32,
		RSP: Size64, R11: Size64,
	} {
		got, err := OperandSizeOf(r)
		require.NoError(t, err, "%v", r)
		require.Equal(t, want, got, "%v", r)
	}
	for _, r := range []Reg{DS, CR0, DR7, RIP} {
		_, err := OperandSizeOf(r)
		require.ErrorIs(t, err, ErrUnsupported, "%v", r)
	}
	require.Equal(t, "32-bit", Size32.String())
}

func TestOpcodeBits(t *testing.T) {
	require.Equal(t, bitseq.Zero, WBit(Size8))
	for _, s := range []OperandSize{Size16, Size32, Size64} {
		require.Equal(t, bitseq.One, WBit(s))
	}

	require.Equal(t, bitseq.One, SignExtendBit(SignExtendImm8, Size8))
	require.Equal(t, bitseq.Zero, SignExtendBit(SignExtendImm8, Size32))
	require.Equal(t, bitseq.Zero, SignExtendBit(NoSignExtend, Size8))

	require.Equal(t, bitseq.Zero, DirectionBit(RegToRM))
	require.Equal(t, bitseq.One, DirectionBit(RMToReg))
}

func TestConditionBits(t *testing.T) {
	for cc := ConditionTest(0); cc < 16; cc++ {
		s, err := ConditionBits(cc)
		require.NoError(t, err)
		require.Len(t, s, 4)
		require.Equal(t, uint8(cc), field(t, s))
	}
	_, err := ConditionBits(16)
	require.ErrorIs(t, err, ErrUnsupported)

	require.Equal(t, CondB, CondC)
	require.Equal(t, CondE, CondZ)
	require.Equal(t, CondNLE, CondG)
	require.Equal(t, CondNE, CondE.Invert())
	require.Equal(t, CondLE, CondG.Invert())
	require.Equal(t, CondO, CondNO.Invert())
	require.Equal(t, "GE", CondNL.String())

	require.Equal(t, JE, Jcc(CondZ))
	require.Equal(t, JNE, Jcc(CondZ.Invert()))
	require.Equal(t, SETA, Setcc(CondNBE))
}

func TestModRMAndSIB(t *testing.T) {
	require.Equal(t, byte(0xd4), modRM(modDirect, bitseq.MustField(2, 3), EncodeRegister3(AH)))
	require.Equal(t, byte(0xb3), sib(2, EncodeRegister3(ESI), EncodeRegister3(EBX)))
	require.Equal(t, byte(0x24), sib(0, EncodeRegister3(ESP), EncodeRegister3(R12)))
}
