package x86enc

import (
	"golang.org/x/xerrors"

	"github.com/umbrellaos/x86enc/bitseq"
)

// Error kinds returned by the encoders. Every error returned by this package wraps exactly
// one of these; test for them with errors.Is.
var (
	// ErrModeViolation: the instruction or operand is undefined in the operating mode.
	ErrModeViolation = xerrors.New("not valid in operating mode")
	// ErrNotRepresentable: the operand combination cannot be expressed in the instruction format.
	ErrNotRepresentable = xerrors.New("encoding not representable")
	// ErrNotYetSupported: no encoding rule covers the operand combination.
	ErrNotYetSupported = xerrors.New("operand combination not supported")
	// ErrUnsupported: a register or enum value that cannot occur in the requested role.
	ErrUnsupported = xerrors.New("unsupported value")

	ErrOutOfRange      = bitseq.ErrOutOfRange
	ErrInvalidArgument = bitseq.ErrInvalidArgument
)
