package x86enc

import (
	. "github.com/umbrellaos/x86enc/internal/flags"
)

// Operand order:
//
// if there's a memory/reg operand (v or m), it goes into modrm.r/m.
// if there's a segment/control/debug register, it goes into modrm.reg and the general
// register, if any, into modrm.r/m.
// a lone general register goes into modrm.r/m, or into the opcode with SHORT_ARG.
// accumulator patterns (A) are implied by the opcode and not encoded.
func (e *encoding) extractArgs() {
	argp := e.form.argp
	var gp []Reg
	special := Reg(0)

	for ai, arg := range e.args {
		switch argp[2*ai] {
		case 'v', 'm':
			e.m = arg
			if mem, ok := arg.(Mem); ok {
				e.mem, e.hasMem = mem, true
			}
		case 'r':
			gp = append(gp, arg.(Reg))
		case 's', 'c', 'd', 'Q', 'R', 'S', 'T', 'U', 'V':
			special = arg.(Reg)
		case 'i':
			e.imms = append(e.imms, arg.(ImmArg))
		case 'o':
			e.rel = arg.(RelArg)
		}
	}

	switch {
	case hasFlag(e.form.flags, SHORT_ARG):
		e.sr = gp[0]
	case special != 0 && e.m == nil && len(gp) == 0:
		// segment register selected by the opcode itself
		e.sr = special
	case special != 0:
		e.r = special
		if e.m == nil {
			e.m = gp[0]
		}
	case e.m != nil:
		if len(gp) > 0 {
			e.r = gp[0]
		}
	case len(gp) == 1:
		e.m = gp[0]
	}
}
