package x86enc

import (
	"fmt"

	"golang.org/x/xerrors"

	"github.com/umbrellaos/x86enc/bitseq"
)

// PrefixKind names a legacy prefix. Kinds are distinct even where they share a byte value.
type PrefixKind uint8

const (
	LOCK PrefixKind = iota + 1
	REPNE
	REP
	BND
	SEG_CS
	SEG_SS
	SEG_DS
	SEG_ES
	SEG_FS
	SEG_GS
	BRANCH_NOT_TAKEN
	BRANCH_TAKEN
	OPERAND_SIZE
	ADDRESS_SIZE
)

// Aliases sharing an encoding with another kind
const (
	REPNZ = REPNE
	REPE  = REP
	REPZ  = REP
)

var prefixBytes = [...]byte{
	LOCK:             0xF0,
	REPNE:            0xF2,
	REP:              0xF3,
	BND:              0xF2,
	SEG_CS:           0x2E,
	SEG_SS:           0x36,
	SEG_DS:           0x3E,
	SEG_ES:           0x26,
	SEG_FS:           0x64,
	SEG_GS:           0x65,
	BRANCH_NOT_TAKEN: 0x2E,
	BRANCH_TAKEN:     0x3E,
	OPERAND_SIZE:     0x66,
	ADDRESS_SIZE:     0x67,
}

var prefixNames = [...]string{
	LOCK:             "lock",
	REPNE:            "repne",
	REP:              "rep",
	BND:              "bnd",
	SEG_CS:           "cs",
	SEG_SS:           "ss",
	SEG_DS:           "ds",
	SEG_ES:           "es",
	SEG_FS:           "fs",
	SEG_GS:           "gs",
	BRANCH_NOT_TAKEN: "hint-not-taken",
	BRANCH_TAKEN:     "hint-taken",
	OPERAND_SIZE:     "data16",
	ADDRESS_SIZE:     "addr16",
}

// PrefixKinds lists every prefix kind.
func PrefixKinds() []PrefixKind {
	kinds := make([]PrefixKind, 0, len(prefixBytes)-1)
	for k := LOCK; int(k) < len(prefixBytes); k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k is a defined prefix kind.
func (k PrefixKind) Valid() bool { return k >= LOCK && int(k) < len(prefixBytes) }

// Byte returns the literal prefix byte, or 0 for an undefined kind.
func (k PrefixKind) Byte() byte {
	if !k.Valid() {
		return 0
	}
	return prefixBytes[k]
}

func (k PrefixKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("PrefixKind(%d)", uint8(k))
	}
	return prefixNames[k]
}

// IsLegacyPrefix reports whether b is a legacy prefix byte.
func IsLegacyPrefix(b byte) bool {
	switch b {
	case 0xF0, 0xF2, 0xF3, 0x2E, 0x36, 0x3E, 0x26, 0x64, 0x65, 0x66, 0x67:
		return true
	}
	return false
}

// IsRex reports whether b is a REX prefix byte (64-bit mode only).
func IsRex(b byte) bool { return b&0xF0 == 0x40 }

// SegmentOverride returns the override prefix selecting segment register r.
func SegmentOverride(r Reg) (PrefixKind, error) {
	if r.Family() == REG_SEGMENT {
		switch r {
		case ES:
			return SEG_ES, nil
		case CS:
			return SEG_CS, nil
		case SS:
			return SEG_SS, nil
		case DS:
			return SEG_DS, nil
		case FS:
			return SEG_FS, nil
		case GS:
			return SEG_GS, nil
		}
	}
	return 0, xerrors.Errorf("segment override for %v: %w", r, ErrUnsupported)
}

// BuildRex packs 0100WRXB. Only the low bit of each argument is used.
func BuildRex(w, r, x, b bitseq.Bit) byte {
	return mustByte(bitseq.Seq{0, 1, 0, 0, w & 1, r & 1, x & 1, b & 1})
}
