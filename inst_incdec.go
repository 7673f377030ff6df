package x86enc

import (
	. "github.com/umbrellaos/x86enc/internal/flags"
)

// The one-byte 40+r / 48+r forms are REX prefixes in 64-bit mode.
var (
	INC = defineInst("INC",
		form{argp: "r*", op: []byte{0x40}, reg: -1, flags: SHORT_ARG | AUTO_SIZE | X86_ONLY},
		form{argp: "vb", op: []byte{0xFE}, reg: 0, flags: W_BIT},
		form{argp: "v*", op: []byte{0xFE}, reg: 0, flags: W_BIT | AUTO_SIZE},
	)
	DEC = defineInst("DEC",
		form{argp: "r*", op: []byte{0x48}, reg: -1, flags: SHORT_ARG | AUTO_SIZE | X86_ONLY},
		form{argp: "vb", op: []byte{0xFE}, reg: 1, flags: W_BIT},
		form{argp: "v*", op: []byte{0xFE}, reg: 1, flags: W_BIT | AUTO_SIZE},
	)
)
