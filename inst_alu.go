package x86enc

import (
	. "github.com/umbrellaos/x86enc/internal/flags"
)

// aluForms returns the forms shared by the eight classic two-operand arithmetic instructions.
// base is the r/m8, r8 opcode; digit is the /digit of the 80/81/83 immediate group.
//
// The w, d and s bits are merged into the listed opcodes:
//
//	base|4|w  AL/AX/EAX/RAX, imm
//	80|s|w    r/m, imm   (s: imm8 sign-extended to the operand size)
//	base|d|w  r/m, r  (d=0)  and  r, r/m  (d=1)
func aluForms(base byte, digit int8) []form {
	return []form{
		{argp: "Abib", op: []byte{base | 4}, reg: -1, flags: W_BIT},
		{argp: "A*i*", op: []byte{base | 4}, reg: -1, flags: W_BIT | AUTO_SIZE},
		{argp: "vbib", op: []byte{0x80}, reg: digit, flags: W_BIT},
		{argp: "v*ib", op: []byte{0x80}, reg: digit, flags: W_BIT | S_BIT | AUTO_SIZE},
		{argp: "v*i*", op: []byte{0x80}, reg: digit, flags: W_BIT | AUTO_SIZE},
		{argp: "vbrb", op: []byte{base}, reg: -1, flags: W_BIT},
		{argp: "v*r*", op: []byte{base}, reg: -1, flags: W_BIT | AUTO_SIZE},
		{argp: "rbvb", op: []byte{base}, reg: -1, flags: W_BIT | D_BIT},
		{argp: "r*v*", op: []byte{base}, reg: -1, flags: W_BIT | D_BIT | AUTO_SIZE},
	}
}

var (
	ADD = defineInst("ADD", aluForms(0x00, 0)...)
	OR  = defineInst("OR", aluForms(0x08, 1)...)
	ADC = defineInst("ADC", aluForms(0x10, 2)...)
	SBB = defineInst("SBB", aluForms(0x18, 3)...)
	AND = defineInst("AND", aluForms(0x20, 4)...)
	SUB = defineInst("SUB", aluForms(0x28, 5)...)
	XOR = defineInst("XOR", aluForms(0x30, 6)...)
	CMP = defineInst("CMP", aluForms(0x38, 7)...)
)
