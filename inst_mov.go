package x86enc

import (
	. "github.com/umbrellaos/x86enc/internal/flags"
)

// MOV between general registers and control, debug and segment registers. The d bit selects
// whether the special register is the destination.
//
// Control and debug register moves always use the mode's native register width. Stores of a
// segment register to memory are always 16 bits wide. Loads ignore the operand size, so a
// 32 or 64-bit source register takes no size prefix.
var MOV = defineInst("MOV",
	form{argp: "r*c_", op: []byte{0x0F, 0x20}, reg: -1, flags: NATIVE_SIZE},
	form{argp: "c_r*", op: []byte{0x0F, 0x20}, reg: -1, flags: NATIVE_SIZE | D_BIT},
	form{argp: "r*d_", op: []byte{0x0F, 0x21}, reg: -1, flags: NATIVE_SIZE},
	form{argp: "d_r*", op: []byte{0x0F, 0x21}, reg: -1, flags: NATIVE_SIZE | D_BIT},
	form{argp: "r*s_", op: []byte{0x8C}, reg: -1, flags: AUTO_SIZE},
	form{argp: "mws_", op: []byte{0x8C}, reg: -1},
	form{argp: "s_vw", op: []byte{0x8C}, reg: -1, flags: D_BIT, check: notCS},
	form{argp: "s_r*", op: []byte{0x8C}, reg: -1, flags: D_BIT, check: notCS},
)
