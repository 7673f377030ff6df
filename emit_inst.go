package x86enc

import (
	"golang.org/x/xerrors"

	"github.com/umbrellaos/x86enc/bitseq"
	. "github.com/umbrellaos/x86enc/internal/flags"
)

// encoding is the plan for a single instruction: everything is decided and validated by
// prepare before write emits a single byte.
type encoding struct {
	mode   Mode
	inst   Inst
	form   *form
	args   []Arg
	opSize uint8

	// extracted operands
	r      Reg // modrm.reg operand; the form's /digit is used when 0
	m      Arg // modrm.r/m operand (Reg or Mem); no ModR/M byte when nil
	sr     Reg // register encoded in the opcode
	imms   []ImmArg
	rel    RelArg
	mem    Mem
	hasMem bool

	addrSize uint8
	rm16     uint8

	// prefixes
	seg      byte
	addrsize bool
	opsize   bool
	rex      bool
	rexW     bool

	op     []byte
	regFld bitseq.Seq
}

func (e *encoding) prepare() error {
	f := e.form
	if f.check != nil {
		if err := f.check(e.args); err != nil {
			return err
		}
	}
	e.extractArgs()

	if err := e.sizePrefixes(); err != nil {
		return err
	}
	if e.hasMem {
		if err := e.sanitizeMem(); err != nil {
			return err
		}
	}
	if err := e.checkRex(); err != nil {
		return err
	}

	// final opcode byte
	e.op = append(make([]byte, 0, len(f.op)), f.op...)
	last := &e.op[len(e.op)-1]
	if hasFlag(f.flags, W_BIT) {
		*last |= byte(WBit(OperandSize(e.opSize)))
	}
	if hasFlag(f.flags, D_BIT) {
		*last |= byte(DirectionBit(RMToReg)) << 1
	}
	if hasFlag(f.flags, S_BIT) {
		*last |= byte(SignExtendBit(SignExtendImm8, OperandSize(e.imms[0].width()))) << 1
	}
	if hasFlag(f.flags, SHORT_ARG) {
		v, err := EncodeRegister3(e.sr).Uint()
		if err != nil {
			return err
		}
		*last |= v
	}
	if hasFlag(f.flags, SREG2_OP) {
		s, err := EncodeSegmentRegister2(e.sr)
		if err != nil {
			return err
		}
		v, err := s.Uint()
		if err != nil {
			return err
		}
		*last |= v << 3
	}

	// modrm.reg
	if e.m != nil {
		switch {
		case e.r != 0:
			s, err := regField(e.r)
			if err != nil {
				return err
			}
			e.regFld = s
		case f.reg >= 0:
			e.regFld = bitseq.MustField(uint8(f.reg), 3)
		default:
			return xerrors.Errorf("%s: form %q has no ModR/M.reg operand: %w", e.inst.Name(), f.argp, ErrUnsupported)
		}
	}
	return nil
}

// sizePrefixes decides the operand-size override and REX.W from the operand size.
func (e *encoding) sizePrefixes() error {
	flags, mode, size := e.form.flags, e.mode, e.opSize
	def := mode.DefaultOperandSize()

	switch {
	case hasFlag(flags, AUTO_SIZE):
		switch size {
		case 2:
			e.opsize = def != 2
		case 4:
			e.opsize = def == 2
		case 8:
			if mode != Long64 {
				return xerrors.Errorf("%s: 64-bit operand in %v mode: %w", e.inst.Name(), mode, ErrModeViolation)
			}
			e.rexW = true
		}
	case hasFlag(flags, STACK_SIZE):
		switch {
		case size == 2:
			e.opsize = def != 2
		case mode == Long64 && size == 4, mode != Long64 && size == 8:
			return xerrors.Errorf("%s: %d-bit stack operand in %v mode: %w", e.inst.Name(), size*8, mode, ErrModeViolation)
		case size == 4:
			e.opsize = def == 2
		}
	case hasFlag(flags, NATIVE_SIZE):
		native := uint8(4)
		if mode == Long64 {
			native = 8
		}
		switch {
		case size == native:
		case size == 4 || size == 8:
			return xerrors.Errorf("%s: %d-bit operand in %v mode: %w", e.inst.Name(), size*8, mode, ErrModeViolation)
		default:
			return xerrors.Errorf("%s: %d-bit operand: %w", e.inst.Name(), size*8, ErrNotRepresentable)
		}
	case hasFlag(flags, REL_SIZE):
		switch size {
		case 2:
			if mode == Long64 {
				return xerrors.Errorf("%s: 16-bit branch offset in %v mode: %w", e.inst.Name(), mode, ErrModeViolation)
			}
			e.opsize = def != 2
		case 4:
			e.opsize = def == 2
		}
	}
	return nil
}

// checkRex determines whether a REX prefix is required, and whether one can be used at all.
func (e *encoding) checkRex() error {
	needRex, highByte := e.rexW, false
	for _, arg := range e.args {
		r, ok := arg.(Reg)
		if !ok {
			continue
		}
		switch {
		case r.Family() == REG_HIGHBYTE:
			highByte = true
		case r.Family() == REG_LEGACY && r.Width() == 8 && e.mode != Long64:
			return xerrors.Errorf("%s: register %v in %v mode: %w", e.inst.Name(), r, e.mode, ErrModeViolation)
		case r.needsRex():
			needRex = true
		}
	}
	if e.hasMem && (e.mem.Base.IsExtended() || e.mem.Index.IsExtended()) {
		needRex = true
	}
	if !needRex {
		return nil
	}
	if e.mode != Long64 {
		return xerrors.Errorf("%s: operands need a REX prefix in %v mode: %w", e.inst.Name(), e.mode, ErrModeViolation)
	}
	if highByte {
		return xerrors.Errorf("%s: high byte register used with a REX prefix: %w", e.inst.Name(), ErrNotRepresentable)
	}
	e.rex = true
	return nil
}

func (e *encoding) rexByte() byte {
	var r, x, b bool
	r = e.r.IsExtended()
	if e.sr != 0 {
		b = e.sr.IsExtended()
	}
	switch m := e.m.(type) {
	case Reg:
		b = m.IsExtended()
	case Mem:
		x = e.mem.Index.IsExtended()
		b = e.mem.Base.IsExtended()
	}
	return BuildRex(bitseq.BitOf(e.rexW), bitseq.BitOf(r), bitseq.BitOf(x), bitseq.BitOf(b))
}

// write emits the planned instruction in architectural order.
func (e *encoding) write(buf *buffer) {
	if e.seg != 0 {
		buf.Byte(e.seg)
	}
	if e.addrsize {
		buf.Byte(ADDRESS_SIZE.Byte())
	}
	if e.opsize {
		buf.Byte(OPERAND_SIZE.Byte())
	}
	if e.rex {
		buf.Byte(e.rexByte())
	}

	buf.Bytes(e.op)

	switch m := e.m.(type) {
	case Reg:
		buf.Byte(modRM(modDirect, e.regFld, EncodeRegister3(m)))
	case Mem:
		e.emitMem(buf)
	}

	for _, imm := range e.imms {
		buf.Imm(imm.Uint64(), imm.width())
	}
	if e.rel != nil {
		buf.Imm(uint64(uint32(e.rel.Int32())), e.rel.width())
	}
}
