package x86enc

import (
	"golang.org/x/xerrors"
)

// 16-bit addressing r/m codes, keyed by base code<<4 | index code (0xf when absent)
var rm16 = map[uint8]uint8{
	3<<4 | 6:   0, // [bx+si]
	3<<4 | 7:   1, // [bx+di]
	5<<4 | 6:   2, // [bp+si]
	5<<4 | 7:   3, // [bp+di]
	6<<4 | 0xf: 4, // [si]
	7<<4 | 0xf: 5, // [di]
	5<<4 | 0xf: 6, // [bp]
	3<<4 | 0xf: 7, // [bx]
}

// sanitizeMem checks that the memory operand can actually be encoded in the operating mode,
// normalizes it and determines the address size and any address-size or segment prefix.
func (e *encoding) sanitizeMem() error {
	mem := &e.mem
	b, i := mem.Base, mem.Index
	if mem.Scale == 0 {
		mem.Scale = 1
	}

	if mem.Segment != 0 {
		kind, err := SegmentOverride(mem.Segment)
		if err != nil {
			return err
		}
		e.seg = kind.Byte()
	}

	for _, r := range [...]Reg{b, i} {
		if r == 0 {
			continue
		}
		if f := r.Family(); f != REG_LEGACY && f != REG_RIP {
			return xerrors.Errorf("%v as memory base/index: %w", r, ErrNotRepresentable)
		}
		if w := r.Width(); w == 1 {
			return xerrors.Errorf("8-bit register %v as memory base/index: %w", r, ErrNotRepresentable)
		}
	}

	// figure out the addressing size
	size := e.mode.DefaultAddressSize()
	switch {
	case b != 0 && i != 0:
		if b.Width() != i.Width() {
			return xerrors.Errorf("registers of differing sizes for base/index %v/%v: %w", b, i, ErrNotRepresentable)
		}
		size = b.Width()
	case b != 0:
		size = b.Width()
	case i != 0:
		size = i.Width()
	}

	switch size {
	case 8:
		if e.mode != Long64 {
			return xerrors.Errorf("64-bit addressing in %v mode: %w", e.mode, ErrModeViolation)
		}
	case 4:
		e.addrsize = e.mode.DefaultAddressSize() != 4
	case 2:
		if e.mode == Long64 {
			return xerrors.Errorf("16-bit addressing in %v mode: %w", e.mode, ErrModeViolation)
		}
		e.addrsize = e.mode.DefaultAddressSize() != 2
	}
	e.addrSize = size

	if b.Family() == REG_RIP || (i != 0 && i.Family() == REG_RIP) {
		if b == 0 || i != 0 || mem.Scale != 1 {
			return xerrors.Errorf("RIP-relative addressing takes no index or scale: %w", ErrNotRepresentable)
		}
		if e.mode != Long64 {
			return xerrors.Errorf("RIP-relative addressing in %v mode: %w", e.mode, ErrModeViolation)
		}
		return nil
	}

	// 16-bit legacy addressing
	if size == 2 {
		// 16-bit addressing has no concept of scale
		if mem.Scale != 1 {
			return xerrors.Errorf("16-bit addressing does not support a scaled index: %w", ErrNotRepresentable)
		}
		if mem.Disp < -0x8000 || mem.Disp > 0xffff {
			return xerrors.Errorf("displacement %#x exceeds 16 bits: %w", mem.Disp, ErrNotRepresentable)
		}
		if b == 0 && i == 0 {
			return nil
		}
		if b == 0 {
			b, i = i, 0
		}
		key := b.Num()<<4 | 0xf
		if i != 0 {
			key = b.Num()<<4 | i.Num()
		}
		rm, ok := rm16[key]
		if !ok && i != 0 {
			// [si+bx] is [bx+si]
			rm, ok = rm16[i.Num()<<4|b.Num()]
		}
		if !ok {
			return xerrors.Errorf("%v: no 16-bit addressing form: %w", *mem, ErrNotRepresentable)
		}
		e.rm16 = rm
		return nil
	}

	// normal addressing
	switch mem.Scale {
	case 1, 2, 4, 8:
	default:
		return xerrors.Errorf("scale %d: %w", mem.Scale, ErrNotRepresentable)
	}

	// RSP as index field can not be represented. Check if we can swap it with base
	if i != 0 && i.Num() == 4 {
		if (b != 0 && b.Num() == 4) || mem.Scale != 1 {
			return xerrors.Errorf("%v cannot be used as index: %w", i, ErrNotRepresentable)
		}
		mem.Base, mem.Index = i, b
	}
	return nil
}
