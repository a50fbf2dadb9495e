// Package rv32 implements a single-hart, user-mode functional simulator
// for a subset of RV32I: the fetch-decode-execute cycle, the
// architectural register file and byte-addressed memory it reads and
// writes, and a disassembler that shares the same decoder.
//
// Instruction formats
//
// Each instruction is 32 bits wide, little-endian. Opcode occupies bits
// [6:0]; the remaining format-specific fields are:
//
//	R:       <funct7:7><rs2:5><rs1:5><funct3:3><rd:5><opcode:7>
//	I:       <imm[11:0]:12><rs1:5><funct3:3><rd:5><opcode:7>
//	S:       <imm[11:5]:7><rs2:5><rs1:5><funct3:3><imm[4:0]:5><opcode:7>
//	B:       <imm[12|10:5]:7><rs2:5><rs1:5><funct3:3><imm[4:1|11]:5><opcode:7>
//	U:       <imm[31:12]:20><rd:5><opcode:7>
//	J:       <imm[20|10:1|11|19:12]:20><rd:5><opcode:7>
//
// Bytecode format
//
// A program is a flat text file, one instruction per line, each line a
// hexadecimal 32-bit word (an optional leading "0x" and an optional
// trailing "#"-introduced comment are both accepted). Instructions are
// loaded consecutively into the text region starting at its base
// address. See Simulator.LoadProgram.
//
// Instruction set
//
// R-type: ADD, SUB, OR, AND. I-load: LB, LH, LW. I-immediate: ADDI,
// XORI, ORI, ANDI, SLLI, SRLI, SRAI. I-jump: JALR. S-type: SB, SH, SW.
// B-type: BEQ, BNE, BLT, BGE, BLTU, BGEU. J-type: JAL. U-type: LUI.
// SYSTEM: ECALL, with a0=10 as the mandatory terminate call and room
// for further syscalls dispatched through Simulator.Syscall.
//
// Memory regions
//
// Memory is a disjoint, contiguous set of byte ranges (see
// DefaultRegions): text, data, a downward-growing stack, and a small
// kernel-data slot reserved for syscall scratch use. Accesses outside
// every region read as zero and silently discard writes.
package rv32
