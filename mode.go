package x86enc

import "fmt"

// Mode is the processor operating mode an instruction is encoded for.
type Mode uint8

const (
	Protected Mode = iota
	RealAddress
	SystemManagement
	Compatibility
	Long64
)

var modeNames = [...]string{
	Protected:        "protected",
	RealAddress:      "real-address",
	SystemManagement: "system-management",
	Compatibility:    "compatibility",
	Long64:           "64-bit",
}

// Modes lists every operating mode.
func Modes() []Mode { return []Mode{Protected, RealAddress, SystemManagement, Compatibility, Long64} }

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool { return m <= Long64 }

// Bits returns the decoder width for code running in m: 16, 32 or 64.
func (m Mode) Bits() int {
	switch m {
	case RealAddress, SystemManagement:
		return 16
	case Long64:
		return 64
	default:
		return 32
	}
}

// DefaultOperandSize returns the operand width, in bytes, used without a size override.
func (m Mode) DefaultOperandSize() uint8 {
	if m.Bits() == 16 {
		return 2
	}
	return 4
}

// DefaultAddressSize returns the address width, in bytes, used without a size override.
func (m Mode) DefaultAddressSize() uint8 { return uint8(m.Bits() / 8) }
