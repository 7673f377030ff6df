package x86enc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/umbrellaos/x86enc/bitseq"
)

func TestPrefixBytes(t *testing.T) {
	for k, want := range map[PrefixKind]byte{
		LOCK: 0xf0, REPNE: 0xf2, REP: 0xf3, BND: 0xf2,
		SEG_CS: 0x2e, SEG_SS: 0x36, SEG_DS: 0x3e, SEG_ES: 0x26, SEG_FS: 0x64, SEG_GS: 0x65,
		BRANCH_NOT_TAKEN: 0x2e, BRANCH_TAKEN: 0x3e,
		OPERAND_SIZE: 0x66, ADDRESS_SIZE: 0x67,
	} {
		require.Equal(t, want, k.Byte(), "%v", k)
		require.True(t, IsLegacyPrefix(k.Byte()), "%v", k)
	}
	require.Len(t, PrefixKinds(), 14)

	require.Equal(t, REP, REPE)
	require.Equal(t, REP, REPZ)
	require.Equal(t, REPNE, REPNZ)

	require.False(t, PrefixKind(0).Valid())
	require.False(t, PrefixKind(100).Valid())
	require.Equal(t, byte(0), PrefixKind(100).Byte())
	require.Equal(t, "PrefixKind(100)", PrefixKind(100).String())
	require.Equal(t, "lock", LOCK.String())

	require.False(t, IsLegacyPrefix(0x90))
	require.False(t, IsLegacyPrefix(0x48))
}

func TestSegmentOverride(t *testing.T) {
	for r, want := range map[Reg]PrefixKind{
		ES: SEG_ES, CS: SEG_CS, SS: SEG_SS, DS: SEG_DS, FS: SEG_FS, GS: SEG_GS,
	} {
		got, err := SegmentOverride(r)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := SegmentOverride(EAX)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestBuildRex(t *testing.T) {
	bits := []bitseq.Bit{bitseq.Zero, bitseq.One}
	seen := map[byte]bool{}
	for _, w := range bits {
		for _, r := range bits {
			for _, x := range bits {
				for _, b := range bits {
					rex := BuildRex(w, r, x, b)
					require.True(t, IsRex(rex))
					require.Equal(t, byte(w)<<3|byte(r)<<2|byte(x)<<1|byte(b), rex&0x0f)
					seen[rex] = true
				}
			}
		}
	}
	require.Len(t, seen, 16)
	require.Equal(t, byte(0x40), BuildRex(0, 0, 0, 0))
	require.Equal(t, byte(0x48), BuildRex(1, 0, 0, 0))
	require.Equal(t, byte(0x4f), BuildRex(1, 1, 1, 1))
	require.False(t, IsRex(0x50))
}
