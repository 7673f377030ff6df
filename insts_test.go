package x86enc

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/arch/x86/x86asm"
)

type instCase struct {
	mode  Mode
	inst  Inst
	intel string
	args  []Arg
	code  string
}

func runInstCases(t *testing.T, cases []instCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.mode.String()+" "+tc.inst.Name()+" "+describeArgs(tc.args), func(t *testing.T) {
			code := roundTrip(t, tc.mode, tc.intel, tc.inst, tc.args...)
			require.Equal(t, tc.code, hex(code))
		})
	}
}

func TestIncDec(t *testing.T) {
	runInstCases(t, []instCase{
		{Protected, INC, "inc eax", []Arg{EAX}, "40"},
		{Protected, INC, "inc ecx", []Arg{ECX}, "41"},
		{Protected, INC, "inc ax", []Arg{AX}, "66 40"},
		{RealAddress, INC, "", []Arg{AX}, "40"},
		{Protected, DEC, "dec edx", []Arg{EDX}, "4a"},
		{Protected, INC, "inc al", []Arg{AL}, "fe c0"},
		{Protected, DEC, "dec al", []Arg{AL}, "fe c8"},
		{Protected, INC, "inc dword ptr [eax]", []Arg{Mem{Base: EAX, Width: 4}}, "ff 00"},
		{Long64, INC, "inc eax", []Arg{EAX}, "ff c0"},
		{Long64, INC, "inc rax", []Arg{RAX}, "48 ff c0"},
		{Long64, DEC, "dec r8", []Arg{R8}, "49 ff c8"},
		{Long64, INC, "inc ax", []Arg{AX}, "66 ff c0"},
	})
}

func TestPushPop(t *testing.T) {
	runInstCases(t, []instCase{
		{Protected, PUSH, "push eax", []Arg{EAX}, "50"},
		{Protected, PUSH, "push ax", []Arg{AX}, "66 50"},
		{RealAddress, PUSH, "", []Arg{EAX}, "66 50"},
		{Long64, PUSH, "push rax", []Arg{RAX}, "50"},
		{Long64, PUSH, "push r9", []Arg{R9}, "41 51"},
		{Long64, POP, "pop rbx", []Arg{RBX}, "5b"},
		{Protected, POP, "pop edi", []Arg{EDI}, "5f"},

		{Protected, PUSH, "push es", []Arg{ES}, "06"},
		{Protected, PUSH, "push cs", []Arg{CS}, "0e"},
		{Protected, PUSH, "push ss", []Arg{SS}, "16"},
		{Protected, PUSH, "push ds", []Arg{DS}, "1e"},
		{Protected, PUSH, "push fs", []Arg{FS}, "0f a0"},
		{Protected, PUSH, "push gs", []Arg{GS}, "0f a8"},
		{Long64, PUSH, "push fs", []Arg{FS}, "0f a0"},
		{Protected, POP, "pop es", []Arg{ES}, "07"},
		{Protected, POP, "pop ss", []Arg{SS}, "17"},
		{Protected, POP, "pop ds", []Arg{DS}, "1f"},
		{Protected, POP, "pop fs", []Arg{FS}, "0f a1"},
		{Long64, POP, "pop gs", []Arg{GS}, "0f a9"},
	})

	for _, tc := range []struct {
		mode Mode
		inst Inst
		arg  Arg
		kind error
	}{
		{Long64, PUSH, ES, ErrModeViolation},
		{Long64, POP, DS, ErrModeViolation},
		{Long64, PUSH, EAX, ErrModeViolation},
		{Protected, PUSH, RAX, ErrModeViolation},
		{Protected, POP, CS, ErrNotRepresentable},
		{Protected, PUSH, AL, ErrNotYetSupported},
	} {
		code, err := Encode(tc.mode, tc.inst, tc.arg)
		require.ErrorIs(t, err, tc.kind, "%v %v %v", tc.mode, tc.inst, tc.arg)
		require.Nil(t, code)
	}
}

func TestMovSpecial(t *testing.T) {
	runInstCases(t, []instCase{
		{Protected, MOV, "mov cr0, eax", []Arg{CR0, EAX}, "0f 22 c0"},
		{Protected, MOV, "mov eax, cr3", []Arg{EAX, CR3}, "0f 20 d8"},
		{Long64, MOV, "mov cr4, rbx", []Arg{CR4, RBX}, "0f 22 e3"},
		{Long64, MOV, "", []Arg{CR8, RAX}, "44 0f 22 c0"},
		{Long64, MOV, "", []Arg{R10, CR2}, "41 0f 20 d2"},
		{Protected, MOV, "mov dr7, eax", []Arg{DR7, EAX}, "0f 23 f8"},
		{Protected, MOV, "mov ecx, dr6", []Arg{ECX, DR6}, "0f 21 f1"},
		{Protected, MOV, "mov ds, ax", []Arg{DS, AX}, "8e d8"},
		{RealAddress, MOV, "", []Arg{SS, AX}, "8e d0"},
		{Protected, MOV, "", []Arg{EAX, ES}, "8c c0"},
		{Protected, MOV, "", []Arg{AX, ES}, "66 8c c0"},
		{Protected, MOV, "", []Arg{Mem{Base: EBX}, FS}, "8c 23"},
		{Protected, MOV, "", []Arg{GS, Mem{Base: EAX}}, "8e 28"},
		{Protected, MOV, "mov ds, ax", []Arg{DS, EAX}, "8e d8"},
		{Long64, MOV, "", []Arg{SS, RAX}, "8e d0"},
		{Long64, MOV, "", []Arg{ES, R9L}, "41 8e c1"},
		{Long64, MOV, "", []Arg{FS, R11}, "41 8e e3"},
	})

	for _, tc := range []struct {
		mode Mode
		args []Arg
		kind error
	}{
		{Long64, []Arg{CR0, EAX}, ErrModeViolation},
		{Protected, []Arg{CR0, RAX}, ErrModeViolation},
		{Protected, []Arg{CR8, EAX}, ErrModeViolation},
		{Protected, []Arg{CR0, AX}, ErrNotRepresentable},
		{Protected, []Arg{CS, AX}, ErrNotRepresentable},
		{Protected, []Arg{CS, EAX}, ErrNotRepresentable},
		{Protected, []Arg{DS, RAX}, ErrModeViolation},
		{Protected, []Arg{CR0, DR0}, ErrNotYetSupported},
	} {
		code, err := Encode(tc.mode, MOV, tc.args...)
		require.ErrorIs(t, err, tc.kind, "%v", tc.args)
		require.Nil(t, code)
	}
}

func TestJcc(t *testing.T) {
	runInstCases(t, []instCase{
		{Long64, JE, "jz .+0x4", []Arg{Rel8(4)}, "74 04"},
		{Long64, JE, "jz .-0x4", []Arg{Rel8(-4)}, "74 fc"},
		{Long64, JE, "jz .+0x8000", []Arg{Rel32(32768)}, "0f 84 00 80 00 00"},
		{Protected, JNE, "", []Arg{Rel32(0x100)}, "0f 85 00 01 00 00"},
		{Protected, JG, "", []Arg{Rel8(-2)}, "7f fe"},
		{Protected, JB, "", []Arg{Rel16(0x10)}, "66 0f 82 10 00"},
		{RealAddress, JE, "", []Arg{Rel16(0x10)}, "0f 84 10 00"},
		{RealAddress, JE, "", []Arg{Rel32(0x10)}, "66 0f 84 10 00 00 00"},
	})

	for cc := ConditionTest(0); cc < 16; cc++ {
		code, err := Encode(Protected, Jcc(cc), Rel8(0))
		require.NoError(t, err)
		require.Equal(t, []byte{0x70 | byte(cc), 0}, code)

		decoded, err := x86asm.Decode(code, 32)
		require.NoError(t, err)
		require.Equal(t, Jcc(cc).Name(), decoded.Op.String())
		require.Equal(t, x86asm.Rel(0), decoded.Args[0])
	}

	code, err := Encode(Long64, JE, Rel16(1))
	require.ErrorIs(t, err, ErrModeViolation)
	require.Nil(t, code)
}

func TestSetcc(t *testing.T) {
	runInstCases(t, []instCase{
		{Protected, SETE, "", []Arg{AL}, "0f 94 c0"},
		{Long64, SETB, "", []Arg{SPB}, "40 0f 92 c4"},
		{Protected, SETG, "", []Arg{Mem{Base: EAX, Width: 1}}, "0f 9f 00"},
	})

	for cc := ConditionTest(0); cc < 16; cc++ {
		code, err := Encode(Long64, Setcc(cc), CL)
		require.NoError(t, err)
		require.Equal(t, []byte{0x0f, 0x90 | byte(cc), 0xc1}, code)

		decoded, err := x86asm.Decode(code, 64)
		require.NoError(t, err)
		require.Equal(t, Setcc(cc).Name(), decoded.Op.String())
		require.Equal(t, x86asm.CL, decoded.Args[0])
	}
}

func TestInstRegistry(t *testing.T) {
	for _, inst := range Insts() {
		found, ok := InstByName(inst.Name())
		require.True(t, ok)
		require.Equal(t, inst, found)
		require.NotEmpty(t, inst.Forms(), inst.Name())
	}
	_, ok := InstByName("FOO")
	require.False(t, ok)
	require.Nil(t, Inst(0).Forms())

	forms := ADC.Forms()
	require.Len(t, forms, 9)
	require.Equal(t, FormInfo{Operands: "AL, imm8", Opcode: "14 ib", Flags: []string{"W_BIT"}}, forms[0])
	require.Equal(t, "r/m16/32/64, imm8", forms[3].Operands)
	require.Equal(t, "80 /2 ib", forms[3].Opcode)

	require.Equal(t, "40+r", INC.Forms()[0].Opcode)
	require.Equal(t, "0F 22 /r", MOV.Forms()[1].Opcode)
}
