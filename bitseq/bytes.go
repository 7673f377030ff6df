package bitseq

import (
	"encoding/binary"

	"golang.org/x/xerrors"
)

// PutUint16 returns v as 2 little-endian bytes.
func PutUint16(v uint16) []byte {
	return binary.LittleEndian.AppendUint16(make([]byte, 0, 2), v)
}

// PutUint32 returns v as 4 little-endian bytes.
func PutUint32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(make([]byte, 0, 4), v)
}

// PutUint64 returns v as 8 little-endian bytes.
func PutUint64(v uint64) []byte {
	return binary.LittleEndian.AppendUint64(make([]byte, 0, 8), v)
}

func checkLen(b []byte, n int) error {
	if len(b) != n {
		return xerrors.Errorf("got %d bytes, need %d: %w", len(b), n, ErrInvalidArgument)
	}
	return nil
}

// Uint16 decodes exactly 2 little-endian bytes.
func Uint16(b []byte) (uint16, error) {
	if err := checkLen(b, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint32 decodes exactly 4 little-endian bytes.
func Uint32(b []byte) (uint32, error) {
	if err := checkLen(b, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint64 decodes exactly 8 little-endian bytes.
func Uint64(b []byte) (uint64, error) {
	if err := checkLen(b, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}
