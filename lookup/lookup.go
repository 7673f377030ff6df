// Package x86lookup maps assembler text to x86enc values: mnemonics, registers, operating
// modes, prefixes and Intel-syntax operands.
package x86lookup

import (
	"strconv"
	"strings"

	"golang.org/x/xerrors"

	"github.com/umbrellaos/x86enc"
)

const maxMnemonicLength = 16

var (
	instMap   = map[string]x86enc.Inst{}
	regMap    = map[string]x86enc.Reg{}
	modeMap   = map[string]x86enc.Mode{}
	prefixMap = map[string]x86enc.PrefixKind{}
)

func init() {
	for _, inst := range x86enc.Insts() {
		instMap[inst.Name()] = inst
	}
	for _, r := range x86enc.Registers() {
		regMap[r.String()] = r
	}
	// conventional spellings of the REX byte registers and the 32-bit extended registers
	for name, r := range map[string]x86enc.Reg{
		"SPL": x86enc.SPB, "BPL": x86enc.BPB, "SIL": x86enc.SIB, "DIL": x86enc.DIB,
		"R8D": x86enc.R8L, "R9D": x86enc.R9L, "R10D": x86enc.R10L, "R11D": x86enc.R11L,
		"R12D": x86enc.R12L, "R13D": x86enc.R13L, "R14D": x86enc.R14L, "R15D": x86enc.R15L,
	} {
		regMap[name] = r
	}

	for _, m := range x86enc.Modes() {
		modeMap[strings.ToUpper(m.String())] = m
	}
	for name, m := range map[string]x86enc.Mode{
		"REAL": x86enc.RealAddress, "16": x86enc.RealAddress, "SMM": x86enc.SystemManagement,
		"32": x86enc.Protected, "COMPAT": x86enc.Compatibility, "LONG": x86enc.Long64, "64": x86enc.Long64,
	} {
		modeMap[name] = m
	}

	for _, k := range x86enc.PrefixKinds() {
		prefixMap[strings.ToUpper(k.String())] = k
	}
	for name, k := range map[string]x86enc.PrefixKind{
		"REPE": x86enc.REPE, "REPZ": x86enc.REPZ, "REPNZ": x86enc.REPNZ,
		"OPSIZE": x86enc.OPERAND_SIZE, "ADDRSIZE": x86enc.ADDRESS_SIZE,
	} {
		prefixMap[name] = k
	}
}

// Lookup the instruction for a mnemonic. The mnemonic will be converted to uppercase if necessary.
func Inst(mnemonic string) (x86enc.Inst, bool) {
	if len(mnemonic) > 0 && len(mnemonic) < maxMnemonicLength {
		inst, ok := instMap[strings.ToUpper(mnemonic)]
		return inst, ok
	}
	return x86enc.Inst(0), false
}

// Lookup a register by name, in any case. SPL/BPL/SIL/DIL and R8D-R15D are accepted
// besides the names the registers print with.
func Reg(name string) (x86enc.Reg, bool) {
	if len(name) > 0 && len(name) < maxMnemonicLength {
		r, ok := regMap[strings.ToUpper(name)]
		return r, ok
	}
	return 0, false
}

// Lookup an operating mode by name ("protected", "real-address", "64-bit", ...) or by one of
// the short aliases "real", "smm", "compat", "long", "16", "32" and "64".
func Mode(name string) (x86enc.Mode, bool) {
	m, ok := modeMap[strings.ToUpper(strings.TrimSpace(name))]
	return m, ok
}

// Lookup a legacy prefix by its assembler name.
func Prefix(name string) (x86enc.PrefixKind, bool) {
	k, ok := prefixMap[strings.ToUpper(strings.TrimSpace(name))]
	return k, ok
}

// Prefixes parses a comma-separated prefix list, keeping its order.
func Prefixes(list string) ([]x86enc.PrefixKind, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	var kinds []x86enc.PrefixKind
	for _, name := range strings.Split(list, ",") {
		k, ok := Prefix(name)
		if !ok {
			return nil, xerrors.Errorf("prefix %q: %w", strings.TrimSpace(name), x86enc.ErrInvalidArgument)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func parseInt(s string, bits int) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 0, bits)
	if err != nil {
		if xerrors.Is(err, strconv.ErrRange) {
			return 0, xerrors.Errorf("%q: %w", s, x86enc.ErrOutOfRange)
		}
		return 0, xerrors.Errorf("%q: %w", s, x86enc.ErrInvalidArgument)
	}
	return v, nil
}

func parseUint(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
	if err != nil {
		if xerrors.Is(err, strconv.ErrRange) {
			return 0, xerrors.Errorf("%q: %w", s, x86enc.ErrOutOfRange)
		}
		return 0, xerrors.Errorf("%q: %w", s, x86enc.ErrInvalidArgument)
	}
	return v, nil
}
