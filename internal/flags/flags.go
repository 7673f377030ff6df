// Package x86flags holds the flags attached to instruction encoding forms.
package x86flags

// Flags
const (
	DEFAULT uint32 = 0 // no size prefixes, opcode emitted as written

	// note: the first 4 in this block are mutually exclusive
	AUTO_SIZE   uint32 = 1 << iota // 16 bit -> OPSIZE if default is 32, 32 bit -> OPSIZE if default is 16, 64 bit -> REX.W
	STACK_SIZE                     // like AUTO_SIZE, but 64 bit is the default in long mode and 32 bit is illegal there
	NATIVE_SIZE                    // general register operand must have the mode's native width; no prefixes
	REL_SIZE                       // branch offsets: 8 bit has no prefix, 16/32 bit as AUTO_SIZE, 16 bit illegal in long mode

	W_BIT     // OR the w bit of the operand size into the last opcode byte
	D_BIT     // OR the direction bit (ModR/M.reg is the destination) into the last opcode byte
	S_BIT     // OR the sign-extend bit of the immediate into the last opcode byte
	SHORT_ARG // a register argument is encoded in the last byte of the opcode
	SREG2_OP  // the 2-bit segment register code is encoded in bits 3-4 of the last opcode byte
	X86_ONLY  // instructions available in protected mode, but not long mode
)

func FlagName(f uint32) string { return flagNames[f] }

var flagNames = map[uint32]string{
	DEFAULT:     "DEFAULT",
	AUTO_SIZE:   "AUTO_SIZE",
	STACK_SIZE:  "STACK_SIZE",
	NATIVE_SIZE: "NATIVE_SIZE",
	REL_SIZE:    "REL_SIZE",
	W_BIT:       "W_BIT",
	D_BIT:       "D_BIT",
	S_BIT:       "S_BIT",
	SHORT_ARG:   "SHORT_ARG",
	SREG2_OP:    "SREG2_OP",
	X86_ONLY:    "X86_ONLY",
}

// FlagNames returns the names of every flag set in f, lowest bit first.
func FlagNames(f uint32) []string {
	var names []string
	for bit := uint32(1); bit != 0 && bit <= f; bit <<= 1 {
		if f&bit != 0 {
			if name, ok := flagNames[bit]; ok {
				names = append(names, name)
			}
		}
	}
	return names
}
