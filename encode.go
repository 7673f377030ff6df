package x86enc

import (
	"golang.org/x/xerrors"

	. "github.com/umbrellaos/x86enc/internal/flags"
)

// Encode returns the machine code for inst with args in the given operating mode.
//
// The first registered form matching the operands is used, so a fixed-register short form
// wins over the general ModR/M form. Encoding is a pure function of its inputs; on error
// no bytes are returned.
func Encode(mode Mode, inst Inst, args ...Arg) ([]byte, error) {
	return EncodeWithPrefixes(mode, nil, inst, args...)
}

// EncodeWithPrefixes is like Encode, but first emits the given legacy prefixes verbatim and
// in order. Prefix groups are neither reordered nor deduplicated.
func EncodeWithPrefixes(mode Mode, prefixes []PrefixKind, inst Inst, args ...Arg) ([]byte, error) {
	e, err := plan(mode, inst, args)
	if err != nil {
		return nil, err
	}
	buf := newBuffer(make([]byte, 0, 16))
	for _, p := range prefixes {
		if !p.Valid() {
			return nil, xerrors.Errorf("%s: prefix %v: %w", inst.Name(), p, ErrUnsupported)
		}
		buf.Byte(p.Byte())
	}
	e.write(buf)
	return buf.Get(), nil
}

// plan selects the form for args and validates it against the mode.
func plan(mode Mode, inst Inst, args []Arg) (*encoding, error) {
	if !mode.Valid() {
		return nil, xerrors.Errorf("%s: %v: %w", inst.Name(), mode, ErrUnsupported)
	}
	def := inst.def()
	if def == nil {
		return nil, xerrors.Errorf("%v: %w", inst, ErrUnsupported)
	}
	for _, arg := range args {
		if arg == nil {
			return nil, xerrors.Errorf("%s: nil operand: %w", def.name, ErrInvalidArgument)
		}
	}

	var modeSkipped bool
	var lastErr error
	for fi := range def.forms {
		f := &def.forms[fi]
		opSize, ok := f.match(args)
		if !ok {
			continue
		}
		if hasFlag(f.flags, X86_ONLY) && mode == Long64 {
			modeSkipped = true
			continue
		}
		e := &encoding{mode: mode, inst: inst, form: f, args: args, opSize: opSize}
		err := e.prepare()
		if err == nil {
			return e, nil
		}
		// a later form may still represent the operands
		if !xerrors.Is(err, ErrNotRepresentable) {
			return nil, err
		}
		lastErr = err
	}

	switch {
	case lastErr != nil:
		return nil, lastErr
	case modeSkipped:
		return nil, xerrors.Errorf("%s %s: %w", def.name, describeArgs(args), modeError(mode))
	}
	return nil, xerrors.Errorf("%s %s in %v mode: %w", def.name, describeArgs(args), mode, ErrNotYetSupported)
}

func modeError(mode Mode) error {
	return xerrors.Errorf("%v mode: %w", mode, ErrModeViolation)
}

func describeArgs(args []Arg) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += FormatArg(a)
	}
	return s
}
