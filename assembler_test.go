package x86enc

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/arch/x86/x86asm"
)

func TestAssemblerSequence(t *testing.T) {
	asm := NewAssembler(RealAddress, make([]byte, 64))
	require.Equal(t, RealAddress, asm.Mode())
	require.NoError(t, asm.Inst(XOR, AX, AX))
	require.NoError(t, asm.Inst(MOV, DS, AX))
	require.Equal(t, 4, asm.PC())
	require.NoError(t, asm.Inst(JNE, Rel8(-4)))
	require.NoError(t, asm.Err())
	require.Equal(t, "31 c0 8e d8 75 fc", hex(asm.Code()))

	var ops []string
	for code := asm.Code(); len(code) > 0; {
		decoded, err := x86asm.Decode(code, 16)
		require.NoError(t, err)
		ops = append(ops, decoded.Op.String())
		code = code[decoded.Len:]
	}
	require.Equal(t, []string{"XOR", "MOV", "JNE"}, ops)
}

func TestAssemblerStickyError(t *testing.T) {
	asm := NewAssembler(Long64, nil)
	require.NoError(t, asm.Inst(ADC, RAX, Imm8(1)))
	code := append([]byte(nil), asm.Code()...)

	err := asm.Inst(AAA)
	require.ErrorIs(t, err, ErrModeViolation)
	require.Equal(t, err, asm.Err())

	// later calls are no-ops
	require.Equal(t, err, asm.Inst(ADC, RAX, Imm8(1)))
	asm.RawByte(0xcc)
	asm.Nop(4)
	require.Equal(t, code, asm.Code())

	asm.Reset(nil)
	require.NoError(t, asm.Err())
	require.Zero(t, asm.PC())
	require.NoError(t, asm.Inst(ADC, RAX, Imm8(1)))
	require.Equal(t, code, asm.Code())
}

func TestAssemblerPrefixes(t *testing.T) {
	asm := NewAssembler(Protected, make([]byte, 0, 32))
	require.NoError(t, asm.Lock(ADC, Mem{Base: EBX, Width: 4}, Imm8(1)))
	require.NoError(t, asm.Prefixed([]PrefixKind{SEG_FS}, ADC, EAX, Mem{Base: ESI}))
	require.Equal(t, "f0 83 13 01 64 13 06", hex(asm.Code()))

	decoded, err := x86asm.Decode(asm.Code(), 32)
	require.NoError(t, err)
	require.Equal(t, 4, decoded.Len)
	require.Equal(t, "lock adc dword ptr [ebx], 0x1", x86asm.IntelSyntax(decoded, 0, nil))

	require.Error(t, asm.Prefixed([]PrefixKind{PrefixKind(99)}, AAA))
	require.Equal(t, 7, asm.PC())
}

func TestAssemblerRaw(t *testing.T) {
	asm := NewAssembler(Protected, nil)
	asm.RawByte(0xeb)
	asm.RawBytes([]byte{0xfe})
	require.Equal(t, []byte{0xeb, 0xfe}, asm.Code())
}

func TestAlignPC(t *testing.T) {
	asm := NewAssembler(Long64, make([]byte, 256))
	require.NoError(t, asm.Inst(ADC, RAX, RBX))
	asm.AlignPC(16)
	require.Len(t, asm.Code(), 16)

	decoded, err := x86asm.Decode(asm.Code(), 64)
	require.NoError(t, err)
	require.Equal(t, "adc rax, rbx", x86asm.IntelSyntax(decoded, 0, nil))

	for code := asm.Code()[decoded.Len:]; len(code) > 0; code = code[decoded.Len:] {
		decoded, err = x86asm.Decode(code, 64)
		require.NoError(t, err)
		require.Equal(t, x86asm.NOP, decoded.Op, "%#x", code)
	}

	// already aligned, or not a power of 2
	asm.AlignPC(8)
	asm.AlignPC(3)
	asm.AlignPC(0)
	require.Len(t, asm.Code(), 16)
}

func TestNop16(t *testing.T) {
	asm := NewAssembler(RealAddress, nil)
	asm.Nop(3)
	require.Equal(t, []byte{0x90, 0x90, 0x90}, asm.Code())

	asm = NewAssembler(Protected, nil)
	asm.Nop(12)
	require.Len(t, asm.Code(), 12)
	for code := asm.Code(); len(code) > 0; {
		decoded, err := x86asm.Decode(code, 32)
		require.NoError(t, err)
		require.Equal(t, x86asm.NOP, decoded.Op)
		code = code[decoded.Len:]
	}
}
