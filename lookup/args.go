package x86lookup

import (
	"math"
	"strings"

	"golang.org/x/xerrors"

	"github.com/umbrellaos/x86enc"
)

var (
	ptrWidths = map[string]uint8{"byte": 1, "word": 2, "dword": 4, "qword": 8}
	immWidths = map[string]uint8{"8": 1, "16": 2, "32": 4, "64": 8}
)

// Args parses a comma-separated Intel-syntax operand list for mode.
//
// Immediates without an explicit ":bits" suffix take the width of the first general register or
// sized memory operand, capped at 32 bits, and are 8 bits wide when there is none.
func Args(mode x86enc.Mode, s string) ([]x86enc.Arg, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")

	var immWidth uint8 = 1
	for _, f := range fields {
		if w := sizingWidth(f); w != 0 {
			immWidth = w
			if immWidth > 4 {
				immWidth = 4
			}
			break
		}
	}

	args := make([]x86enc.Arg, 0, len(fields))
	for _, f := range fields {
		arg, err := Arg(mode, f, immWidth)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func sizingWidth(s string) uint8 {
	s = strings.ToLower(strings.TrimSpace(s))
	if r, ok := Reg(s); ok {
		if r.IsGeneral() {
			return r.Width()
		}
		return 0
	}
	if word, _, ok := strings.Cut(s, " "); ok {
		return ptrWidths[word]
	}
	return 0
}

// Arg parses a single operand. immWidth is the width, in bytes, given to an immediate
// without a ":bits" suffix.
func Arg(mode x86enc.Mode, s string, immWidth uint8) (x86enc.Arg, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, xerrors.Errorf("empty operand: %w", x86enc.ErrInvalidArgument)
	}
	if r, ok := Reg(s); ok {
		return r, nil
	}
	if strings.Contains(s, "[") {
		return parseMem(s)
	}
	if kind, off, ok := strings.Cut(s, " "); ok && (kind == "short" || kind == "near") {
		return parseRel(mode, kind, off)
	}
	return parseImm(s, immWidth)
}

func parseRel(mode x86enc.Mode, kind, s string) (x86enc.Arg, error) {
	bits := 32
	switch {
	case kind == "short":
		bits = 8
	case mode.DefaultOperandSize() == 2:
		bits = 16
	}
	v, err := parseInt(s, bits)
	if err != nil {
		return nil, err
	}
	switch bits {
	case 8:
		return x86enc.Rel8(v), nil
	case 16:
		return x86enc.Rel16(v), nil
	}
	return x86enc.Rel32(v), nil
}

// parseImm accepts an unsigned or negative number with an optional ":8", ":16", ":32" or
// ":64" width suffix. Negative values are stored in two's complement.
func parseImm(s string, width uint8) (x86enc.Arg, error) {
	if num, bits, ok := strings.Cut(s, ":"); ok {
		w, ok := immWidths[bits]
		if !ok {
			return nil, xerrors.Errorf("immediate width %q: %w", bits, x86enc.ErrInvalidArgument)
		}
		width, s = w, num
	}

	var v uint64
	if strings.HasPrefix(s, "-") {
		n, err := parseInt(s, int(width)*8)
		if err != nil {
			return nil, err
		}
		v = uint64(n)
	} else {
		n, err := parseUint(s)
		if err != nil {
			return nil, err
		}
		if width < 8 && n>>(uint(width)*8) != 0 {
			return nil, xerrors.Errorf("immediate %s does not fit in %d bits: %w", s, int(width)*8, x86enc.ErrOutOfRange)
		}
		v = n
	}

	switch width {
	case 1:
		return x86enc.Imm8(v), nil
	case 2:
		return x86enc.Imm16(v), nil
	case 4:
		return x86enc.Imm32(v), nil
	case 8:
		return x86enc.Imm64(v), nil
	}
	return nil, xerrors.Errorf("immediate width %d: %w", width, x86enc.ErrInvalidArgument)
}

// parseMem parses "[size [ptr]] [seg:][base+index*scale+disp]", with the segment override
// allowed inside the brackets as well.
func parseMem(s string) (x86enc.Arg, error) {
	var m x86enc.Mem
	open, end := strings.IndexByte(s, '['), strings.LastIndexByte(s, ']')
	if end < open || strings.TrimSpace(s[end+1:]) != "" {
		return nil, xerrors.Errorf("memory operand %q: %w", s, x86enc.ErrInvalidArgument)
	}

	head := strings.Fields(s[:open])
	if len(head) > 0 && strings.HasSuffix(head[len(head)-1], ":") {
		seg := strings.TrimSuffix(head[len(head)-1], ":")
		head = head[:len(head)-1]
		if err := setSegment(&m, seg); err != nil {
			return nil, err
		}
	}
	if len(head) > 0 {
		w, ok := ptrWidths[head[0]]
		if !ok || len(head) > 2 || (len(head) == 2 && head[1] != "ptr") {
			return nil, xerrors.Errorf("memory operand size %q: %w", strings.Join(head, " "), x86enc.ErrInvalidArgument)
		}
		m.Width = w
	}

	expr := strings.ReplaceAll(s[open+1:end], " ", "")
	if seg, rest, ok := strings.Cut(expr, ":"); ok {
		if err := setSegment(&m, seg); err != nil {
			return nil, err
		}
		expr = rest
	}
	if expr == "" {
		return nil, xerrors.Errorf("memory operand %q: %w", s, x86enc.ErrInvalidArgument)
	}

	var disp int64
	for _, term := range splitTerms(expr) {
		neg := term[0] == '-'
		body := strings.TrimLeft(term, "+-")

		if idx, scale, ok := strings.Cut(body, "*"); ok {
			r, okReg := Reg(idx)
			if !okReg {
				// scale*index
				idx, scale = scale, idx
				r, okReg = Reg(idx)
			}
			n, err := parseInt(scale, 8)
			if !okReg || err != nil || neg || m.Index != 0 {
				return nil, xerrors.Errorf("index term %q: %w", term, x86enc.ErrInvalidArgument)
			}
			m.Index, m.Scale = r, uint8(n)
			continue
		}
		if r, ok := Reg(body); ok {
			switch {
			case neg:
				return nil, xerrors.Errorf("negated register %q: %w", term, x86enc.ErrInvalidArgument)
			case m.Base == 0:
				m.Base = r
			case m.Index == 0:
				m.Index, m.Scale = r, 1
			default:
				return nil, xerrors.Errorf("too many registers in %q: %w", s, x86enc.ErrInvalidArgument)
			}
			continue
		}
		n, err := parseUint(body)
		if err != nil {
			return nil, err
		}
		if neg {
			disp -= int64(n)
		} else {
			disp += int64(n)
		}
		if disp < math.MinInt32 || disp > math.MaxUint32 {
			return nil, xerrors.Errorf("displacement in %q: %w", s, x86enc.ErrOutOfRange)
		}
	}
	if disp > math.MaxInt32 {
		// absolute addresses above 2 GiB wrap to the same 32-bit field
		disp = int64(int32(uint32(disp)))
	}
	m.Disp = int32(disp)
	return m, nil
}

func setSegment(m *x86enc.Mem, name string) error {
	r, ok := Reg(name)
	if !ok || r.Family() != x86enc.REG_SEGMENT {
		return xerrors.Errorf("segment %q: %w", name, x86enc.ErrInvalidArgument)
	}
	m.Segment = r
	return nil
}

// splitTerms splits an address expression before every + or -, keeping the sign.
func splitTerms(expr string) []string {
	var terms []string
	start := 0
	for i := 1; i < len(expr); i++ {
		if expr[i] == '+' || expr[i] == '-' {
			terms = append(terms, expr[start:i])
			start = i
		}
	}
	return append(terms, expr[start:])
}
