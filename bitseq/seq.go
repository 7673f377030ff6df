package bitseq

import (
	"strings"

	"golang.org/x/xerrors"
)

// Seq is a sequence of bits written most-significant first, the way instruction
// fields are laid out in the processor manuals (e.g. mod:2 reg:3 rm:3).
type Seq []Bit

// Field returns the low width bits of v, most-significant first.
// v must fit in width bits.
func Field(v uint8, width int) (Seq, error) {
	if width < 1 || width > 8 {
		return nil, xerrors.Errorf("field width %d not in [1,8]: %w", width, ErrOutOfRange)
	}
	if width < 8 && v>>uint(width) != 0 {
		return nil, xerrors.Errorf("value %#x does not fit in %d bits: %w", v, width, ErrInvalidArgument)
	}
	s := make(Seq, width)
	for i := range s {
		s[i] = Bit(v>>uint(width-1-i)) & 1
	}
	return s, nil
}

// MustField is like Field but panics on error. It is meant for fields whose width and
// value are already masked by the caller.
func MustField(v uint8, width int) Seq {
	s, err := Field(v, width)
	if err != nil {
		panic(err)
	}
	return s
}

// Concat joins sequences in order.
func Concat(parts ...Seq) Seq {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	s := make(Seq, 0, n)
	for _, p := range parts {
		s = append(s, p...)
	}
	return s
}

// Byte packs an 8-bit sequence into a byte, first bit most-significant.
func (s Seq) Byte() (byte, error) {
	return Pack(s, BigEndian)
}

// Uint returns the value of a sequence of at most 8 bits.
func (s Seq) Uint() (uint8, error) {
	if len(s) > 8 {
		return 0, xerrors.Errorf("sequence of %d bits: %w", len(s), ErrInvalidArgument)
	}
	var v uint8
	for _, b := range s {
		if err := checkBit(b); err != nil {
			return 0, err
		}
		v = v<<1 | uint8(b)
	}
	return v, nil
}

func (s Seq) String() string {
	var sb strings.Builder
	for _, b := range s {
		sb.WriteByte('0' + byte(b&1))
	}
	return sb.String()
}
