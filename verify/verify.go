package verify

import (
	"strings"

	"golang.org/x/arch/x86/x86asm"
	"golang.org/x/xerrors"

	"github.com/umbrellaos/x86enc"
)

var (
	// ErrTrailingBytes is returned when a single instruction was expected but the decoder
	// stopped before the end of the code.
	ErrTrailingBytes = xerrors.New("trailing bytes after instruction")
	// ErrMismatch is returned when the decoded instruction differs from the encoded one.
	ErrMismatch = xerrors.New("decoded instruction does not match")
)

var (
	toX86asm   = map[x86enc.Reg]x86asm.Reg{}
	fromX86asm = map[x86asm.Reg]x86enc.Reg{}
)

func init() {
	byName := map[string]x86asm.Reg{}
	for i := 1; i < 256; i++ {
		r := x86asm.Reg(i)
		if name := r.String(); !strings.HasPrefix(name, "Reg(") {
			byName[name] = r
		}
	}
	for _, r := range x86enc.Registers() {
		if ar, ok := byName[r.String()]; ok {
			toX86asm[r] = ar
			fromX86asm[ar] = r
		}
	}
}

// Reg returns the decoder's register for r.
func Reg(r x86enc.Reg) (x86asm.Reg, bool) {
	ar, ok := toX86asm[r]
	return ar, ok
}

// Decode decodes exactly one instruction from code, as executed in mode.
func Decode(mode x86enc.Mode, code []byte) (x86asm.Inst, error) {
	inst, err := x86asm.Decode(code, mode.Bits())
	if err != nil {
		return inst, xerrors.Errorf("decoding % x: %w", code, err)
	}
	if inst.Len != len(code) {
		return inst, xerrors.Errorf("decoded %d of %d bytes of % x: %w", inst.Len, len(code), code, ErrTrailingBytes)
	}
	return inst, nil
}

// Intel decodes exactly one instruction and renders it in Intel syntax, with branch targets
// relative to the instruction.
func Intel(mode x86enc.Mode, code []byte) (string, error) {
	inst, err := Decode(mode, code)
	if err != nil {
		return "", err
	}
	return x86asm.IntelSyntax(inst, 0, nil), nil
}

// All decodes instructions from code until while returns false or the code is exhausted.
func All(mode x86enc.Mode, code []byte, while func(x86asm.Inst) bool) error {
	for n := 0; n < len(code); {
		inst, err := x86asm.Decode(code[n:], mode.Bits())
		if err != nil {
			return xerrors.Errorf("decoding at offset %d: %w", n, err)
		}
		if !while(inst) {
			return nil
		}
		n += inst.Len
	}
	return nil
}

// RoundTrip encodes inst with args, decodes the result and checks it with Match.
func RoundTrip(mode x86enc.Mode, inst x86enc.Inst, args ...x86enc.Arg) ([]byte, x86asm.Inst, error) {
	code, err := x86enc.Encode(mode, inst, args...)
	if err != nil {
		return nil, x86asm.Inst{}, err
	}
	decoded, err := Decode(mode, code)
	if err != nil {
		return code, decoded, err
	}
	return code, decoded, Match(decoded, inst, args...)
}

// Match reports whether decoded is inst with args: the same mnemonic, and operand fields
// equal to the inputs. Immediates compare as bit patterns of their declared width, the way
// they are encoded; the decoder's sign-extended value matches when its low bits agree.
func Match(decoded x86asm.Inst, inst x86enc.Inst, args ...x86enc.Arg) error {
	if op := decoded.Op.String(); op != inst.Name() {
		return xerrors.Errorf("decoded %s, not %s: %w", op, inst.Name(), ErrMismatch)
	}
	for i, arg := range args {
		if i >= len(decoded.Args) || decoded.Args[i] == nil {
			return xerrors.Errorf("operand %d (%s) missing from decoded %v: %w", i, x86enc.FormatArg(arg), decoded, ErrMismatch)
		}
		if !sameArg(arg, decoded.Args[i], decoded.AddrSize) {
			return xerrors.Errorf("operand %d decodes as %v, not %s: %w", i, decoded.Args[i], x86enc.FormatArg(arg), ErrMismatch)
		}
	}
	return nil
}

func sameArg(want x86enc.Arg, got x86asm.Arg, addrSize int) bool {
	switch want := want.(type) {
	case x86enc.Reg:
		r, ok := got.(x86asm.Reg)
		return ok && sameReg(want, r)
	case x86enc.ImmArg:
		imm, ok := got.(x86asm.Imm)
		return ok && uint64(imm)&widthMask(want) == want.Uint64()
	case x86enc.RelArg:
		rel, ok := got.(x86asm.Rel)
		return ok && int32(rel) == want.Int32()
	case x86enc.Mem:
		m, ok := got.(x86asm.Mem)
		return ok && sameMem(want, m, addrSize)
	}
	return false
}

func widthMask(imm x86enc.ImmArg) uint64 {
	switch imm.(type) {
	case x86enc.Imm8:
		return 0xff
	case x86enc.Imm16:
		return 0xffff
	case x86enc.Imm32:
		return 0xffffffff
	}
	return ^uint64(0)
}

// sameMem compares the address fields. The segment is only compared for an explicit
// override, and base and index may trade places when the index is unscaled, as they do
// for an ESP index or a 16-bit SI+BX pair.
func sameMem(want x86enc.Mem, got x86asm.Mem, addrSize int) bool {
	if want.Segment != 0 && !sameReg(want.Segment, got.Segment) {
		return false
	}
	if addrSize == 16 {
		if uint16(got.Disp) != uint16(want.Disp) {
			return false
		}
	} else if uint32(got.Disp) != uint32(want.Disp) {
		return false
	}

	wantScale, gotScale := want.Scale, got.Scale
	if wantScale == 0 {
		wantScale = 1
	}
	if gotScale == 0 {
		gotScale = 1
	}
	if sameOptReg(want.Base, got.Base) && sameOptReg(want.Index, got.Index) {
		return want.Index == 0 || gotScale == wantScale
	}
	return wantScale == 1 && gotScale == 1 && sameOptReg(want.Base, got.Index) && sameOptReg(want.Index, got.Base)
}

func sameOptReg(want x86enc.Reg, got x86asm.Reg) bool {
	if want == 0 || got == 0 {
		return want == 0 && got == 0
	}
	ar, ok := Reg(want)
	return ok && ar == got
}

// sameReg compares registers by encoding. The decoder widens the general register of a
// segment register load to the operand size, so general registers match by number alone.
func sameReg(want x86enc.Reg, got x86asm.Reg) bool {
	if ar, ok := Reg(want); ok && ar == got {
		return true
	}
	r, ok := fromX86asm[got]
	return ok && want.IsGeneral() && r.IsGeneral() && want.Family() == r.Family() && want.Num() == r.Num()
}
