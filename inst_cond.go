package x86enc

import (
	"github.com/umbrellaos/x86enc/bitseq"
	. "github.com/umbrellaos/x86enc/internal/flags"
)

// tttn returns the opcode byte with high nibble hi and the condition test in the low nibble.
func tttn(hi uint8, cc ConditionTest) byte {
	bits, err := ConditionBits(cc)
	if err != nil {
		panic(err)
	}
	return mustByte(bitseq.Concat(bitseq.MustField(hi, 4), bits))
}

func defineJcc(name string, cc ConditionTest) Inst {
	return defineInst(name,
		form{argp: "ob", op: []byte{tttn(0x7, cc)}, reg: -1, flags: REL_SIZE},
		form{argp: "ow", op: []byte{0x0F, tttn(0x8, cc)}, reg: -1, flags: REL_SIZE},
		form{argp: "od", op: []byte{0x0F, tttn(0x8, cc)}, reg: -1, flags: REL_SIZE},
	)
}

func defineSetcc(name string, cc ConditionTest) Inst {
	return defineInst(name, form{argp: "vb", op: []byte{0x0F, tttn(0x9, cc)}, reg: 0})
}

// Conditional jumps
var (
	JO  = defineJcc("JO", CondO)
	JNO = defineJcc("JNO", CondNO)
	JB  = defineJcc("JB", CondB)
	JAE = defineJcc("JAE", CondAE)
	JE  = defineJcc("JE", CondE)
	JNE = defineJcc("JNE", CondNE)
	JBE = defineJcc("JBE", CondBE)
	JA  = defineJcc("JA", CondA)
	JS  = defineJcc("JS", CondS)
	JNS = defineJcc("JNS", CondNS)
	JP  = defineJcc("JP", CondP)
	JNP = defineJcc("JNP", CondNP)
	JL  = defineJcc("JL", CondL)
	JGE = defineJcc("JGE", CondGE)
	JLE = defineJcc("JLE", CondLE)
	JG  = defineJcc("JG", CondG)
)

// Conditional byte sets
var (
	SETO  = defineSetcc("SETO", CondO)
	SETNO = defineSetcc("SETNO", CondNO)
	SETB  = defineSetcc("SETB", CondB)
	SETAE = defineSetcc("SETAE", CondAE)
	SETE  = defineSetcc("SETE", CondE)
	SETNE = defineSetcc("SETNE", CondNE)
	SETBE = defineSetcc("SETBE", CondBE)
	SETA  = defineSetcc("SETA", CondA)
	SETS  = defineSetcc("SETS", CondS)
	SETNS = defineSetcc("SETNS", CondNS)
	SETP  = defineSetcc("SETP", CondP)
	SETNP = defineSetcc("SETNP", CondNP)
	SETL  = defineSetcc("SETL", CondL)
	SETGE = defineSetcc("SETGE", CondGE)
	SETLE = defineSetcc("SETLE", CondLE)
	SETG  = defineSetcc("SETG", CondG)
)

var jccInsts = [16]Inst{JO, JNO, JB, JAE, JE, JNE, JBE, JA, JS, JNS, JP, JNP, JL, JGE, JLE, JG}

var setccInsts = [16]Inst{SETO, SETNO, SETB, SETAE, SETE, SETNE, SETBE, SETA, SETS, SETNS, SETP, SETNP, SETL, SETGE, SETLE, SETG}
