// Package bitseq provides the bit and byte primitives used to assemble instruction fields:
// single-bit access within a byte in either digit numbering, bit-run copies, packing of
// 8-bit sequences, big-endian field sequences and little-endian integer serialization.
package bitseq

import (
	"golang.org/x/xerrors"
)

var (
	// ErrOutOfRange is returned when a bit position or bit count lies outside its valid domain.
	ErrOutOfRange = xerrors.New("bit position out of range")
	// ErrInvalidArgument is returned for malformed bit sequences or byte slices.
	ErrInvalidArgument = xerrors.New("invalid argument")
)

// Bit is a single binary digit, either 0 or 1.
type Bit uint8

const (
	Zero Bit = 0
	One  Bit = 1
)

// BitOf returns One for true and Zero for false.
func BitOf(set bool) Bit {
	if set {
		return One
	}
	return Zero
}

// Order selects how bit digits within a byte are numbered.
type Order uint8

const (
	// LittleEndian numbers digit 0 as the least-significant bit.
	LittleEndian Order = iota
	// BigEndian numbers digit 0 as the most-significant bit.
	BigEndian
)

func (o Order) String() string {
	if o == BigEndian {
		return "big-endian"
	}
	return "little-endian"
}

// shift converts a digit in the given order into a shift count from the least-significant bit.
func (o Order) shift(digit int) uint {
	if o == BigEndian {
		return uint(7 - digit)
	}
	return uint(digit)
}

func checkDigit(digit int) error {
	if digit < 0 || digit > 7 {
		return xerrors.Errorf("digit %d not in [0,7]: %w", digit, ErrOutOfRange)
	}
	return nil
}

func checkBit(v Bit) error {
	if v > 1 {
		return xerrors.Errorf("bit value %d: %w", v, ErrInvalidArgument)
	}
	return nil
}

// GetBit returns the bit of b at digit.
func GetBit(b byte, digit int, order Order) (Bit, error) {
	if err := checkDigit(digit); err != nil {
		return 0, err
	}
	return Bit(b>>order.shift(digit)) & 1, nil
}

// SetBit returns b with the bit at digit replaced by v.
func SetBit(b byte, digit int, v Bit, order Order) (byte, error) {
	if err := checkDigit(digit); err != nil {
		return b, err
	}
	if err := checkBit(v); err != nil {
		return b, err
	}
	mask := byte(1) << order.shift(digit)
	return b&^mask | byte(v)<<order.shift(digit), nil
}

// CopyBit returns dst with its bit at dstDigit replaced by the bit of src at srcDigit.
func CopyBit(src, dst byte, srcDigit, dstDigit int, order Order) (byte, error) {
	v, err := GetBit(src, srcDigit, order)
	if err != nil {
		return dst, err
	}
	return SetBit(dst, dstDigit, v, order)
}

// CopyBits copies count consecutive digits of src starting at srcFrom into dst starting at dstFrom.
// Both runs must lie entirely within digits 0..7; nothing is copied otherwise.
func CopyBits(src, dst byte, srcFrom, dstFrom, count int, order Order) (byte, error) {
	if count < 1 || count > 8 {
		return dst, xerrors.Errorf("bit count %d not in [1,8]: %w", count, ErrOutOfRange)
	}
	if err := checkDigit(srcFrom); err != nil {
		return dst, err
	}
	if err := checkDigit(dstFrom); err != nil {
		return dst, err
	}
	if srcFrom+count > 8 || dstFrom+count > 8 {
		return dst, xerrors.Errorf("run of %d bits from digits %d/%d: %w", count, srcFrom, dstFrom, ErrOutOfRange)
	}
	for i := 0; i < count; i++ {
		// digits are validated above
		dst, _ = CopyBit(src, dst, srcFrom+i, dstFrom+i, order)
	}
	return dst, nil
}

// Pack packs exactly 8 bits into a byte. bits[i] lands on digit i of the given order.
func Pack(bits []Bit, order Order) (byte, error) {
	if len(bits) != 8 {
		return 0, xerrors.Errorf("packing %d bits, need 8: %w", len(bits), ErrInvalidArgument)
	}
	var b byte
	for digit, v := range bits {
		if err := checkBit(v); err != nil {
			return 0, err
		}
		b |= byte(v) << order.shift(digit)
	}
	return b, nil
}

// Unpack returns the 8 bits of b; element i holds digit i of the given order.
func Unpack(b byte, order Order) []Bit {
	bits := make([]Bit, 8)
	for digit := range bits {
		bits[digit] = Bit(b>>order.shift(digit)) & 1
	}
	return bits
}
