// package x86enc encodes IA-32 and x86-64 instructions into machine code for a chosen
// processor operating mode.
//
// usage example:
//
//	package example
//
//	import (
//		"errors"
//
//		// Importing everything from the package into the current scope
//		// makes for less noise:
//		. "github.com/umbrellaos/x86enc"
//	)
//
//	func BootStub() ([]byte, error) {
//		asm := NewAssembler(RealAddress, make([]byte, 0, 64))
//
//		asm.Inst(XOR, AX, AX)                      // AX := 0
//		asm.Inst(MOV, DS, AX)                      // DS := AX
//		asm.Inst(ADC, AL, Imm8(0x12))              // 14 12
//		asm.Inst(AAD, Imm8(16))                    // D5 10
//		asm.Inst(CMP, Mem{Base: BX, Width: 1}, Imm8(0))
//		asm.Inst(JNE, Rel8(-2))
//		if err := asm.Err(); err != nil {
//			if errors.Is(err, ErrModeViolation) {
//				// the instruction does not exist in this mode
//			}
//			return nil, err
//		}
//		return asm.Code(), nil
//	}
//
// Every encode is a pure function of (instruction, operands, mode). Errors wrap one of
// ErrModeViolation, ErrNotRepresentable, ErrNotYetSupported, ErrUnsupported, ErrOutOfRange
// or ErrInvalidArgument, and no bytes are produced alongside an error.
package x86enc
