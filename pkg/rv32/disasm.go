package rv32

import "fmt"

// Disassemble decodes one 32-bit instruction word and renders it as
// RISC-V assembly, folding the documented set of pseudo-instructions
// (spec.md §4.5): jr, j, bgtz/bltz/blez/bgez. It reuses the same Decode
// the executor consumes, so the two can never disagree about field
// semantics (spec.md §9 "Opcode dispatch").
func Disassemble(ci uint32) string {
	in := Decode(ci)
	switch in.Format {
	case FormatR:
		return disasmR(in)
	case FormatILoad:
		return disasmILoad(in)
	case FormatIImm:
		return disasmIImm(in)
	case FormatIJump:
		return disasmIJump(in)
	case FormatS:
		return disasmS(in)
	case FormatB:
		return disasmB(in)
	case FormatJ:
		return disasmJ(in)
	case FormatU:
		return fmt.Sprintf("lui x%d, %d", in.Rd, int32(in.Imm)>>12)
	case FormatSystem:
		return "ecall"
	case FormatNop:
		return "nop"
	default:
		return fmt.Sprintf("<unknown instruction: 0x%08x>", ci)
	}
}

func disasmR(in Inst) string {
	switch in.Funct3 {
	case 0:
		switch in.Funct7 {
		case 0x00:
			return fmt.Sprintf("add x%d, x%d, x%d", in.Rd, in.Rs1, in.Rs2)
		case 0x20:
			return fmt.Sprintf("sub x%d, x%d, x%d", in.Rd, in.Rs1, in.Rs2)
		}
	case 0x6:
		return fmt.Sprintf("or x%d, x%d, x%d", in.Rd, in.Rs1, in.Rs2)
	case 0x7:
		return fmt.Sprintf("and x%d, x%d, x%d", in.Rd, in.Rs1, in.Rs2)
	}
	return fmt.Sprintf("<unknown R instruction: 0x%08x>", in.Raw)
}

func disasmILoad(in Inst) string {
	mnem := [...]string{0: "lb", 1: "lh", 2: "lw"}
	if int(in.Funct3) < len(mnem) && mnem[in.Funct3] != "" {
		return fmt.Sprintf("%s x%d, %d(x%d)", mnem[in.Funct3], in.Rd, int32(in.Imm), in.Rs1)
	}
	return fmt.Sprintf("<unknown load instruction: 0x%08x>", in.Raw)
}

func disasmIImm(in Inst) string {
	shamt := in.Imm & 0b11111
	switch in.Funct3 {
	case 0:
		return fmt.Sprintf("addi x%d, x%d, %d", in.Rd, in.Rs1, int32(in.Imm))
	case 0x4:
		return fmt.Sprintf("xori x%d, x%d, %d", in.Rd, in.Rs1, int32(in.Imm))
	case 0x6:
		return fmt.Sprintf("ori x%d, x%d, %d", in.Rd, in.Rs1, int32(in.Imm))
	case 0x7:
		return fmt.Sprintf("andi x%d, x%d, %d", in.Rd, in.Rs1, int32(in.Imm))
	case 0x1:
		return fmt.Sprintf("slli x%d, x%d, %d", in.Rd, in.Rs1, shamt)
	case 0x5:
		switch bits(in.Raw, 31, 25) {
		case 0x00:
			return fmt.Sprintf("srli x%d, x%d, %d", in.Rd, in.Rs1, shamt)
		case 0x20:
			return fmt.Sprintf("srai x%d, x%d, %d", in.Rd, in.Rs1, shamt)
		}
	}
	return fmt.Sprintf("<unknown I-immediate instruction: 0x%08x>", in.Raw)
}

// disasmIJump folds `jalr x0, rs1, 0` to `jr rs1`, per spec.md §4.5.
func disasmIJump(in Inst) string {
	if in.Rd == 0 && in.Imm == 0 {
		return fmt.Sprintf("jr x%d", in.Rs1)
	}
	return fmt.Sprintf("jalr x%d, x%d, %d", in.Rd, in.Rs1, int32(in.Imm))
}

func disasmS(in Inst) string {
	mnem := [...]string{0: "sb", 1: "sh", 2: "sw"}
	if int(in.Funct3) < len(mnem) && mnem[in.Funct3] != "" {
		return fmt.Sprintf("%s x%d, %d(x%d)", mnem[in.Funct3], in.Rs2, int32(in.Imm), in.Rs1)
	}
	return fmt.Sprintf("<unknown store instruction: 0x%08x>", in.Raw)
}

// disasmB folds branches against x0 into bgtz/bltz/blez/bgez, per
// spec.md §4.5.
func disasmB(in Inst) string {
	imm := int32(in.Imm)
	switch in.Funct3 {
	case 0:
		return fmt.Sprintf("beq x%d, x%d, %d", in.Rs1, in.Rs2, imm)
	case 1:
		return fmt.Sprintf("bne x%d, x%d, %d", in.Rs1, in.Rs2, imm)
	case 4:
		switch {
		case in.Rs1 == 0:
			return fmt.Sprintf("bgtz x%d, %d", in.Rs2, imm)
		case in.Rs2 == 0:
			return fmt.Sprintf("bltz x%d, %d", in.Rs1, imm)
		default:
			return fmt.Sprintf("blt x%d, x%d, %d", in.Rs1, in.Rs2, imm)
		}
	case 5:
		switch {
		case in.Rs1 == 0:
			return fmt.Sprintf("blez x%d, %d", in.Rs2, imm)
		case in.Rs2 == 0:
			return fmt.Sprintf("bgez x%d, %d", in.Rs1, imm)
		default:
			return fmt.Sprintf("bge x%d, x%d, %d", in.Rs1, in.Rs2, imm)
		}
	case 6:
		return fmt.Sprintf("bltu x%d, x%d, %d", in.Rs1, in.Rs2, imm)
	case 7:
		return fmt.Sprintf("bgeu x%d, x%d, %d", in.Rs1, in.Rs2, imm)
	}
	return fmt.Sprintf("<unknown branch instruction: 0x%08x>", in.Raw)
}

// disasmJ folds `jal x0, imm` to `j imm`, per spec.md §4.5.
func disasmJ(in Inst) string {
	if in.Rd == 0 {
		return fmt.Sprintf("j %d", int32(in.Imm))
	}
	return fmt.Sprintf("jal x%d, %d", in.Rd, int32(in.Imm))
}
