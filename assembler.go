package x86enc

// An Assembler appends encoded instructions for one operating mode to a byte slice.
// It holds no encoding state: every Inst call is an independent Encode whose output is
// appended only when it succeeds.
//
// The first error is kept and makes every later call a no-op until Reset is called.
type Assembler struct {
	b    buffer
	mode Mode
	err  error
}

// Create a new Assembler for instruction encoding in mode. Output is appended to buf[:0];
// a larger slice is allocated when buf's capacity is exceeded.
func NewAssembler(mode Mode, buf []byte) *Assembler {
	return &Assembler{b: *newBuffer(buf), mode: mode}
}

// Mode returns the operating mode instructions are encoded for.
func (a *Assembler) Mode() Mode { return a.mode }

// Reset clears the error and the encoded instructions. If buf is not nil, it replaces
// the assembler's buffer.
func (a *Assembler) Reset(buf []byte) {
	if buf != nil {
		a.b = *newBuffer(buf)
	} else {
		a.b.Reset()
	}
	a.err = nil
}

// Get the first error which occured while encoding, since the assembler was last reset.
func (a *Assembler) Err() error { return a.err }

// Get the current encoded instructions.
func (a *Assembler) Code() []byte { return a.b.Get() }

// Get the current program counter (i.e. number of bytes written to the encoding buffer).
func (a *Assembler) PC() int { return a.b.Len() }

// Nop appends n bytes of NOP padding.
func (a *Assembler) Nop(n int) {
	if a.err == nil {
		a.b.Nop(n, a.mode.DefaultAddressSize())
	}
}

// Align the program counter to a power-of-2 offset. Intermediate space will be filled with NOPs.
func (a *Assembler) AlignPC(pow2 int) {
	if pow2 <= 0 || pow2&(pow2-1) != 0 {
		return
	}
	if pad := -a.PC() & (pow2 - 1); pad > 0 {
		a.Nop(pad)
	}
}

// Encode inst with args to the encoding buffer.
func (a *Assembler) Inst(inst Inst, args ...Arg) error {
	return a.withPrefix(nil, inst, args...)
}

// Encode inst with args, preceded by the given legacy prefixes.
func (a *Assembler) Prefixed(prefixes []PrefixKind, inst Inst, args ...Arg) error {
	return a.withPrefix(prefixes, inst, args...)
}

// Encode inst with args and a LOCK prefix.
func (a *Assembler) Lock(inst Inst, args ...Arg) error {
	return a.withPrefix([]PrefixKind{LOCK}, inst, args...)
}

// Encode inst with args and a REP/REPE/REPZ prefix.
func (a *Assembler) Rep(inst Inst, args ...Arg) error {
	return a.withPrefix([]PrefixKind{REP}, inst, args...)
}

// Encode inst with args and a REPNE/REPNZ prefix.
func (a *Assembler) Repne(inst Inst, args ...Arg) error {
	return a.withPrefix([]PrefixKind{REPNE}, inst, args...)
}

func (a *Assembler) withPrefix(prefixes []PrefixKind, inst Inst, args ...Arg) error {
	if a.err != nil {
		return a.err
	}
	code, err := EncodeWithPrefixes(a.mode, prefixes, inst, args...)
	if err != nil {
		a.err = err
		return err
	}
	a.b.Bytes(code)
	return nil
}

// Write a raw byte to the encoding buffer.
func (a *Assembler) RawByte(v byte) {
	if a.err == nil {
		a.b.Byte(v)
	}
}

// Write raw bytes to the encoding buffer.
func (a *Assembler) RawBytes(v []byte) {
	if a.err == nil {
		a.b.Bytes(v)
	}
}
