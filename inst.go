package x86enc

import (
	"fmt"
	"strings"

	. "github.com/umbrellaos/x86enc/internal/flags"
)

// Inst identifies an instruction mnemonic. Its value is an index into the encoding-rule
// registry and carries no meaning of its own.
type Inst uint16

// form is one legal operand combination of an instruction.
type form struct {
	argp  string // operand pattern, two bytes per operand (see match.go)
	op    []byte // opcode bytes, before W/D/S/short-arg bits are merged into the last one
	reg   int8   // ModR/M.reg opcode extension (/digit), or -1
	flags uint32
	check func(args []Arg) error // extra operand restrictions, may be nil
}

type instDef struct {
	name  string
	forms []form
}

var registry []instDef

// defineInst registers an instruction and its forms. Forms are tried in order, so shorter
// encodings must come first.
func defineInst(name string, forms ...form) Inst {
	registry = append(registry, instDef{name: name, forms: forms})
	return Inst(len(registry))
}

func (inst Inst) def() *instDef {
	if inst == 0 || int(inst) > len(registry) {
		return nil
	}
	return &registry[inst-1]
}

// Name returns the uppercase mnemonic.
func (inst Inst) Name() string {
	if d := inst.def(); d != nil {
		return d.name
	}
	return fmt.Sprintf("Inst(%d)", uint16(inst))
}

func (inst Inst) String() string { return inst.Name() }

// Insts returns every registered instruction in definition order.
func Insts() []Inst {
	insts := make([]Inst, len(registry))
	for i := range insts {
		insts[i] = Inst(i + 1)
	}
	return insts
}

// InstByName finds an instruction by its uppercase mnemonic.
func InstByName(name string) (Inst, bool) {
	for i := range registry {
		if registry[i].name == name {
			return Inst(i + 1), true
		}
	}
	return 0, false
}

// FormInfo describes one registered operand form.
type FormInfo struct {
	Operands string // e.g. "r/m32, imm8"
	Opcode   string // e.g. "83 /2 ib"
	Flags    []string
}

// Forms describes every operand form registered for inst, in selection order.
func (inst Inst) Forms() []FormInfo {
	d := inst.def()
	if d == nil {
		return nil
	}
	infos := make([]FormInfo, len(d.forms))
	for i := range d.forms {
		f := &d.forms[i]
		infos[i] = FormInfo{Operands: describePattern(f.argp), Opcode: f.describeOpcode(), Flags: FlagNames(f.flags)}
	}
	return infos
}

func (f *form) describeOpcode() string {
	var parts []string
	for i, b := range f.op {
		if i == len(f.op)-1 && hasFlag(f.flags, D_BIT) {
			b |= byte(DirectionBit(RMToReg)) << 1
		}
		parts = append(parts, fmt.Sprintf("%02X", b))
	}
	switch {
	case hasFlag(f.flags, SHORT_ARG):
		parts[len(parts)-1] += "+r"
	case f.reg >= 0:
		parts = append(parts, fmt.Sprintf("/%d", f.reg))
	case strings.ContainsAny(f.argp, "vmscd"):
		parts = append(parts, "/r")
	}
	for i := 0; i+1 < len(f.argp); i += 2 {
		if f.argp[i] == 'i' || f.argp[i] == 'o' {
			parts = append(parts, string([]byte{f.argp[i], f.argp[i+1]}))
		}
	}
	return strings.Join(parts, " ")
}

func hasFlag(flags, flag uint32) bool { return flags&flag == flag }
