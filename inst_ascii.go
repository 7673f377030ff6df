package x86enc

import (
	. "github.com/umbrellaos/x86enc/internal/flags"
)

// ASCII adjust instructions. All are undefined in 64-bit mode.
// AAD and AAM take an optional number base, 10 when omitted.
var (
	AAA = defineInst("AAA", form{argp: "", op: []byte{0x37}, reg: -1, flags: X86_ONLY})
	AAS = defineInst("AAS", form{argp: "", op: []byte{0x3F}, reg: -1, flags: X86_ONLY})
	AAD = defineInst("AAD",
		form{argp: "", op: []byte{0xD5, 0x0A}, reg: -1, flags: X86_ONLY},
		form{argp: "ib", op: []byte{0xD5}, reg: -1, flags: X86_ONLY},
	)
	AAM = defineInst("AAM",
		form{argp: "", op: []byte{0xD4, 0x0A}, reg: -1, flags: X86_ONLY},
		form{argp: "ib", op: []byte{0xD4}, reg: -1, flags: X86_ONLY},
	)
)
