package rv32

// Execute runs the decoded instruction in against the committed state
// cur, consulting mem for loads, and returns the Delta the cycle driver
// should apply. Source operands are read from cur — the redesigned
// equivalent of spec.md §3's "executor reads from NextState", which is
// only ever a copy of the just-committed CurrentState refreshed at cycle
// entry (spec.md §9).
func Execute(cur State, mem *Memory, in Inst) Delta {
	var d Delta
	switch in.Format {
	case FormatR:
		executeR(cur, in, &d)
	case FormatILoad:
		executeILoad(cur, mem, in, &d)
	case FormatIImm:
		executeIImm(cur, in, &d)
	case FormatIJump:
		executeIJump(cur, in, &d)
	case FormatS:
		executeS(cur, in, &d)
	case FormatB:
		executeB(cur, in, &d)
	case FormatJ:
		executeJ(cur, in, &d)
	case FormatU:
		executeU(in, &d)
	case FormatSystem:
		executeSystem(cur, in, &d)
	case FormatNop:
		// all-zero word: no effect, PC advances normally.
	default:
		d.halt(ErrUndefinedOpcode)
	}
	return d
}

func executeR(cur State, in Inst, d *Delta) {
	switch in.Funct3 {
	case 0:
		switch in.Funct7 {
		case 0x00: // ADD
			d.setReg(in.Rd, cur.Regs[in.Rs1]+cur.Regs[in.Rs2])
		case 0x20: // SUB
			d.setReg(in.Rd, cur.Regs[in.Rs1]-cur.Regs[in.Rs2])
		default:
			d.halt(ErrUndefinedFunct)
		}
	case 0x6: // OR
		d.setReg(in.Rd, cur.Regs[in.Rs1]|cur.Regs[in.Rs2])
	case 0x7: // AND
		d.setReg(in.Rd, cur.Regs[in.Rs1]&cur.Regs[in.Rs2])
	default:
		d.halt(ErrUndefinedFunct)
	}
}

func executeILoad(cur State, mem *Memory, in Inst, d *Delta) {
	addr := cur.Regs[in.Rs1] + in.Imm
	switch in.Funct3 {
	case 0: // LB: sign-extend byte
		d.setReg(in.Rd, sext(uint32(mem.ReadByte(addr)), 8))
	case 1: // LH: sign-extend halfword
		d.setReg(in.Rd, sext(uint32(mem.ReadHalf(addr)), 16))
	case 2: // LW
		d.setReg(in.Rd, mem.ReadWord(addr))
	default:
		d.halt(ErrUndefinedFunct)
	}
}

func executeIImm(cur State, in Inst, d *Delta) {
	shamt := in.Imm & 0b11111
	switch in.Funct3 {
	case 0: // ADDI
		d.setReg(in.Rd, cur.Regs[in.Rs1]+in.Imm)
	case 0x4: // XORI
		d.setReg(in.Rd, cur.Regs[in.Rs1]^in.Imm)
	case 0x6: // ORI
		d.setReg(in.Rd, cur.Regs[in.Rs1]|in.Imm)
	case 0x7: // ANDI
		d.setReg(in.Rd, cur.Regs[in.Rs1]&in.Imm)
	case 0x1: // SLLI
		d.setReg(in.Rd, cur.Regs[in.Rs1]<<shamt)
	case 0x5:
		switch bits(in.Raw, 31, 25) {
		case 0x00: // SRLI
			d.setReg(in.Rd, cur.Regs[in.Rs1]>>shamt)
		case 0x20: // SRAI: arithmetic (sign-propagating) shift
			d.setReg(in.Rd, uint32(int32(cur.Regs[in.Rs1])>>shamt))
		default:
			d.halt(ErrUndefinedFunct)
		}
	default:
		d.halt(ErrUndefinedFunct)
	}
}

func executeIJump(cur State, in Inst, d *Delta) {
	if in.Funct3 != 0 {
		d.halt(ErrUndefinedFunct)
		return
	}
	d.setReg(in.Rd, cur.PC+4)
	target := (cur.Regs[in.Rs1] + in.Imm) &^ 1 // JALR clears the LSB
	d.jumpTo(target)
}

func executeS(cur State, in Inst, d *Delta) {
	addr := cur.Regs[in.Rs1] + in.Imm
	val := cur.Regs[in.Rs2]
	switch in.Funct3 {
	case 0: // SB: store only the low 8 bits
		d.writeByte(addr, val)
	case 1: // SH: store only the low 16 bits
		d.writeHalf(addr, val)
	case 2: // SW
		d.writeWord(addr, val)
	default:
		d.halt(ErrUndefinedFunct)
	}
}

func executeB(cur State, in Inst, d *Delta) {
	a, b := cur.Regs[in.Rs1], cur.Regs[in.Rs2]
	var taken bool
	switch in.Funct3 {
	case 0: // BEQ
		taken = a == b
	case 1: // BNE
		taken = a != b
	case 4: // BLT (signed)
		taken = int32(a) < int32(b)
	case 5: // BGE (signed)
		taken = int32(a) >= int32(b)
	case 6: // BLTU
		taken = a < b
	case 7: // BGEU
		taken = a >= b
	default:
		d.halt(ErrUndefinedFunct)
		return
	}
	if taken {
		d.jumpTo(cur.PC + in.Imm)
	}
}

func executeJ(cur State, in Inst, d *Delta) {
	d.setReg(in.Rd, cur.PC+4)
	d.jumpTo(cur.PC + in.Imm)
}

func executeU(in Inst, d *Delta) {
	d.setReg(in.Rd, in.Imm)
}

// a0/a1 are the ABI names for x10/x11, used by the SYSTEM/ECALL
// convention spec.md §4.3 and SPEC_FULL.md §1.1 define.
const (
	regA0 = 10
	regA1 = 11
)

func executeSystem(cur State, in Inst, d *Delta) {
	if in.Funct3 != 0 || in.Opcode != OpcodeSystem {
		d.halt(ErrUndefinedFunct)
		return
	}
	a0 := cur.Regs[regA0]
	if a0 == 10 {
		d.halt(ErrHalted)
		return
	}
	// Not the mandatory terminate call: stage it for the optional
	// syscall hook (pkg/console) rather than acting on it here, keeping
	// the core free of I/O policy. See SPEC_FULL.md §1.1.
	v := a0
	d.Syscall = &v
}
