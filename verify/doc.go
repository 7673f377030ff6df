// Package verify checks x86enc output against the x86asm decoder.
//
// example usage:
//
//	package example
//
//	import (
//		"fmt"
//
//		. "github.com/umbrellaos/x86enc"
//		"github.com/umbrellaos/x86enc/verify"
//		"golang.org/x/arch/x86/x86asm"
//	)
//
//	func Check() error {
//		asm := NewAssembler(Protected, nil)
//		asm.Inst(ADC, EAX, Mem{Base: EBX, Index: ESI, Scale: 4, Disp: 8})
//		asm.Inst(SETNE, AL)
//		asm.Inst(JE, Rel8(-2))
//		if asm.Err() != nil {
//			return asm.Err()
//		}
//
//		return verify.All(Protected, asm.Code(), func(inst x86asm.Inst) bool {
//			fmt.Println(x86asm.IntelSyntax(inst, 0, nil))
//			return true
//		})
//		// Outputs:
//		//
//		//	adc eax, dword ptr [ebx+esi*4+0x8]
//		//	setnz al
//		//	jz .-0x2
//	}
package verify
