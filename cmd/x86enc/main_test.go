package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/umbrellaos/x86enc"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeCmd(t *testing.T) {
	for _, tc := range []struct {
		args []string
		want string
	}{
		{[]string{"encode", "adc", "al,", "0x12"}, "14 12\n"},
		{[]string{"encode", "ADC", "dword [ebx+esi*4+8], 1:8"}, "83 54 b3 08 01\n"},
		{[]string{"encode", "--mode", "64", "adc", "r9,", "1:8"}, "49 83 d1 01\n"},
		{[]string{"--mode", "real", "encode", "jne", "short", "-4"}, "75 fc\n"},
		{[]string{"encode", "--prefix", "lock", "adc", "dword", "[ebx],", "1:8"}, "f0 83 13 01\n"},
		{[]string{"encode", "--verify", "setne", "al"}, "0f 95 c0\tsetnz al\n"},
		{[]string{"encode", "aad"}, "d5 0a\n"},
	} {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			out, err := run(t, tc.args...)
			require.NoError(t, err)
			require.Equal(t, tc.want, out)
		})
	}
}

func TestEncodeCmdErrors(t *testing.T) {
	for _, tc := range []struct {
		args []string
		kind error
	}{
		{[]string{"encode", "--mode", "64", "aaa"}, x86enc.ErrModeViolation},
		{[]string{"encode", "--mode", "v86", "aaa"}, x86enc.ErrUnsupported},
		{[]string{"encode", "frob"}, x86enc.ErrUnsupported},
		{[]string{"encode", "--prefix", "rex", "aaa"}, x86enc.ErrInvalidArgument},
		{[]string{"encode", "adc", "al,", "0x1234"}, x86enc.ErrOutOfRange},
		{[]string{"encode", "adc", "al,", "ah,", "bl"}, x86enc.ErrNotYetSupported},
	} {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			_, err := run(t, tc.args...)
			require.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestFormsCmd(t *testing.T) {
	out, err := run(t, "forms", "inc")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "INC", lines[0])
	require.Contains(t, lines[1], "40+r")

	out, err = run(t, "forms")
	require.NoError(t, err)
	for _, inst := range x86enc.Insts() {
		require.Contains(t, out, inst.Name()+"\n")
	}

	_, err = run(t, "forms", "frob")
	require.ErrorIs(t, err, x86enc.ErrUnsupported)
}

func TestModesCmd(t *testing.T) {
	out, err := run(t, "modes")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(x86enc.Modes()))
	require.Contains(t, lines[1], "real-address")
	require.Contains(t, lines[1], "bits=16 operand=16 address=16")
	require.Contains(t, lines[4], "bits=64 operand=32 address=64")
}
