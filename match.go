package x86enc

import "strconv"

// Operand type/size patterns
//
// i : immediate
// o : relative branch offset
//
// r : general purpose reg
// m : memory
// v : r and m
// s : segment reg
// c : control reg
// d : debug reg
//
// A : match al, ax, eax or rax
// Q ... V: match es, cs, ss, ds, fs, gs
//
// b, w, d, q match a byte, word, doubleword and quadword
// * matches w/d/q for r/v/m; for i it matches the operand size, capped at d
// _ matches a lack of size
//
// A memory operand without a Width takes the size of the register operand it is paired
// with. Forms whose operands leave the operand size undetermined never match.
func (f *form) match(args []Arg) (opSize uint8, ok bool) {
	if len(f.argp) != 2*len(args) {
		return 0, false
	}

	// merge records the operand size implied by one operand; conflicting sizes fail
	merge := func(w uint8) bool {
		if opSize != 0 && opSize != w {
			return false
		}
		opSize = w
		return true
	}

	wildcard, unsizedMem, sizedByReg := false, false, false
	for ai, arg := range args {
		t, sz := f.argp[2*ai], f.argp[2*ai+1]

		// check type
		switch t {
		case 'i':
			if _, ok := arg.(ImmArg); !ok {
				return 0, false
			}
			continue // sized once the operand size is known
		case 'o':
			if _, ok := arg.(RelArg); !ok {
				return 0, false
			}
		case 'A':
			if r, ok := arg.(Reg); !ok || r.Family() != REG_LEGACY || r.Num() != 0 {
				return 0, false
			}
		case 'r', 'v':
			switch a := arg.(type) {
			case Reg:
				if !a.IsGeneral() {
					return 0, false
				}
			case Mem:
				if t != 'v' {
					return 0, false
				}
			default:
				return 0, false
			}
		case 'm':
			if _, ok := arg.(Mem); !ok {
				return 0, false
			}
		case 's':
			if r, ok := arg.(Reg); !ok || r.Family() != REG_SEGMENT {
				return 0, false
			}
		case 'c':
			if r, ok := arg.(Reg); !ok || r.Family() != REG_CONTROL {
				return 0, false
			}
		case 'd':
			if r, ok := arg.(Reg); !ok || r.Family() != REG_DEBUG {
				return 0, false
			}
		case 'Q', 'R', 'S', 'T', 'U', 'V':
			if r, ok := arg.(Reg); !ok || r.Family() != REG_SEGMENT || r.Num() != t-'Q' {
				return 0, false
			}
		default:
			return 0, false
		}

		// check size
		_, isMem := arg.(Mem)
		_, isReg := arg.(Reg)
		w := arg.width()
		if isMem && w == 0 {
			unsizedMem = true
		}
		switch sz {
		case '_':
			// segment registers fix the size of the memory operand they move
			sizedByReg = sizedByReg || isReg
		case '*':
			wildcard = true
			if w == 0 && isMem {
				continue
			}
			sizedByReg = sizedByReg || isReg
			if w != 2 && w != 4 && w != 8 {
				return 0, false
			}
			if !merge(w) {
				return 0, false
			}
		default:
			want := sizeOf(sz)
			if w != want && !(w == 0 && isMem) {
				return 0, false
			}
			if !merge(want) {
				return 0, false
			}
			sizedByReg = sizedByReg || isReg
		}
	}
	if wildcard && opSize == 0 {
		return 0, false
	}
	// a memory operand without a Width needs a register to fix its size
	if unsizedMem && !sizedByReg {
		return 0, false
	}

	// immediates take their width from the operand size
	for ai, arg := range args {
		if f.argp[2*ai] != 'i' {
			continue
		}
		want := sizeOf(f.argp[2*ai+1])
		if f.argp[2*ai+1] == '*' {
			want = opSize
			if want > 4 {
				want = 4
			}
		}
		if want == 0 || arg.width() != want {
			return 0, false
		}
	}
	return opSize, true
}

func sizeOf(sz byte) uint8 {
	switch sz {
	case 'b':
		return 1
	case 'w':
		return 2
	case 'd':
		return 4
	case 'q':
		return 8
	}
	return 0
}

var accumulatorNames = map[byte]string{'b': "AL", 'w': "AX", 'd': "EAX", 'q': "RAX", '*': "AX/EAX/RAX"}

var patternTypes = map[byte]string{
	'i': "imm", 'o': "rel", 'r': "r", 'm': "m", 'v': "r/m",
	's': "Sreg", 'c': "CR", 'd': "DR",
	'Q': "ES", 'R': "CS", 'S': "SS", 'T': "DS", 'U': "FS", 'V': "GS",
}

// describePattern renders an operand pattern in manual notation, e.g. "r/m16/32/64, imm8".
func describePattern(argp string) string {
	s := ""
	for i := 0; i+1 < len(argp); i += 2 {
		if i > 0 {
			s += ", "
		}
		t, sz := argp[i], argp[i+1]
		if t == 'A' {
			s += accumulatorNames[sz]
			continue
		}
		s += patternTypes[t]
		switch sz {
		case 'b', 'w', 'd', 'q':
			s += strconv.Itoa(int(sizeOf(sz)) * 8)
		case '*':
			if t == 'i' {
				s += "16/32"
			} else {
				s += "16/32/64"
			}
		}
	}
	return s
}
