package x86enc

import "fmt"

// ConditionTest is the tttn field selecting the flag condition of Jcc, SETcc and CMOVcc.
// Several mnemonics share one code.
type ConditionTest uint8

const (
	CondO   ConditionTest = 0x0 // overflow
	CondNO  ConditionTest = 0x1
	CondB   ConditionTest = 0x2 // below (unsigned <)
	CondNAE ConditionTest = 0x2
	CondC   ConditionTest = 0x2
	CondAE  ConditionTest = 0x3 // above or equal (unsigned >=)
	CondNB  ConditionTest = 0x3
	CondNC  ConditionTest = 0x3
	CondE   ConditionTest = 0x4 // equal
	CondZ   ConditionTest = 0x4
	CondNE  ConditionTest = 0x5
	CondNZ  ConditionTest = 0x5
	CondBE  ConditionTest = 0x6 // below or equal (unsigned <=)
	CondNA  ConditionTest = 0x6
	CondA   ConditionTest = 0x7 // above (unsigned >)
	CondNBE ConditionTest = 0x7
	CondS   ConditionTest = 0x8 // sign
	CondNS  ConditionTest = 0x9
	CondP   ConditionTest = 0xA // parity even
	CondPE  ConditionTest = 0xA
	CondNP  ConditionTest = 0xB
	CondPO  ConditionTest = 0xB
	CondL   ConditionTest = 0xC // less (signed <)
	CondNGE ConditionTest = 0xC
	CondGE  ConditionTest = 0xD // greater or equal (signed >=)
	CondNL  ConditionTest = 0xD
	CondLE  ConditionTest = 0xE // less or equal (signed <=)
	CondNG  ConditionTest = 0xE
	CondG   ConditionTest = 0xF // greater (signed >)
	CondNLE ConditionTest = 0xF
)

var ccNames = [16]string{"O", "NO", "B", "AE", "E", "NE", "BE", "A", "S", "NS", "P", "NP", "L", "GE", "LE", "G"}

func (cc ConditionTest) String() string {
	if cc < 16 {
		return ccNames[cc]
	}
	return fmt.Sprintf("ConditionTest(%d)", uint8(cc))
}

// Invert returns the opposite condition; the n bit of tttn selects negation.
func (cc ConditionTest) Invert() ConditionTest { return cc ^ 1 }

// Jcc returns the conditional jump for cc.
func Jcc(cc ConditionTest) Inst { return jccInsts[cc&0xf] }

// Setcc returns the conditional set-byte instruction for cc.
func Setcc(cc ConditionTest) Inst { return setccInsts[cc&0xf] }
