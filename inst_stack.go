package x86enc

import (
	"golang.org/x/xerrors"

	. "github.com/umbrellaos/x86enc/internal/flags"
)

// PUSH and POP of general and segment registers. ES, CS, SS and DS have one-byte forms
// carrying a 2-bit segment code, invalid in 64-bit mode; FS and GS use two-byte forms.
var (
	PUSH = defineInst("PUSH",
		form{argp: "r*", op: []byte{0x50}, reg: -1, flags: SHORT_ARG | STACK_SIZE},
		form{argp: "U_", op: []byte{0x0F, 0xA0}, reg: -1},
		form{argp: "V_", op: []byte{0x0F, 0xA8}, reg: -1},
		form{argp: "s_", op: []byte{0x06}, reg: -1, flags: SREG2_OP | X86_ONLY},
	)
	POP = defineInst("POP",
		form{argp: "r*", op: []byte{0x58}, reg: -1, flags: SHORT_ARG | STACK_SIZE},
		form{argp: "U_", op: []byte{0x0F, 0xA1}, reg: -1},
		form{argp: "V_", op: []byte{0x0F, 0xA9}, reg: -1},
		form{argp: "s_", op: []byte{0x07}, reg: -1, flags: SREG2_OP | X86_ONLY, check: notCS},
	)
)

// notCS rejects CS as a destination; its would-be encodings are the 0F escape byte and
// MOV to CS, which is undefined.
func notCS(args []Arg) error {
	for _, arg := range args {
		if arg == CS {
			return xerrors.Errorf("CS as destination: %w", ErrNotRepresentable)
		}
	}
	return nil
}
