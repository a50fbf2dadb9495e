package rv32

// The following constants define the recognized opcodes (bits [6:0] of
// the instruction word). See spec.md §4.2.
const (
	OpcodeR      = 0b0110011 // R-type: ADD, SUB, OR, AND
	OpcodeILoad  = 0b0000011 // I-type load: LB, LH, LW
	OpcodeIImm   = 0b0010011 // I-type immediate: ADDI, XORI, ORI, ANDI, SLLI, SRLI, SRAI
	OpcodeIJump  = 0b1100111 // I-type jump: JALR
	OpcodeS      = 0b0100011 // S-type: SB, SH, SW
	OpcodeB      = 0b1100011 // B-type: BEQ, BNE, BLT, BGE, BLTU, BGEU
	OpcodeJ      = 0b1101111 // J-type: JAL
	OpcodeU      = 0b0110111 // U-type: LUI
	OpcodeSystem = 0b1110011 // SYSTEM: ECALL
	OpcodeNop    = 0b0000000 // all-zero word: end-of-program pad
)

// Format identifies which of the RV32I encodings an Inst was decoded
// from. The same Format drives both Execute and Disassemble.
type Format int

// The recognized instruction formats, matching spec.md §4.2's table.
const (
	FormatR Format = iota
	FormatILoad
	FormatIImm
	FormatIJump
	FormatS
	FormatB
	FormatJ
	FormatU
	FormatSystem
	FormatNop
	FormatUndefined
)

// Inst is a decoded instruction: the tagged value spec.md §9 ("Opcode
// dispatch") calls for, produced once by Decode and consumed by both
// Execute and Disassemble so the two never disagree about field
// semantics.
type Inst struct {
	Raw    uint32
	Format Format
	Opcode uint32
	Rd     uint32
	Rs1    uint32
	Rs2    uint32
	Funct3 uint32
	Funct7 uint32

	// Imm holds the format's reconstructed, sign-extended-where-the-ISA-
	// says-so immediate:
	//   I-load/I-imm/I-jump: sext12(inst[31:20])
	//   S: sext12({inst[31:25], inst[11:7]})
	//   B: sext13({inst[31],inst[7],inst[30:25],inst[11:8],0}), LSB always 0
	//   J: sext21({inst[31],inst[19:12],inst[20],inst[30:21],0}), LSB always 0
	//   U: inst[31:12] << 12 (already placed, not further sign-extended)
	Imm uint32
}

// sext sign-extends the low `bits` bits of x to a full 32-bit value.
func sext(x uint32, bits uint) uint32 {
	shift := 32 - bits
	return uint32(int32(x<<shift) >> shift)
}

func bit(x uint32, n uint) uint32 {
	return (x >> n) & 1
}

func bits(x uint32, hi, lo uint) uint32 {
	return (x >> lo) & ((1 << (hi - lo + 1)) - 1)
}

// decodeImmI reconstructs the 12-bit I-type immediate: inst[31:20].
func decodeImmI(ci uint32) uint32 {
	return sext(bits(ci, 31, 20), 12)
}

// decodeImmS reconstructs the 12-bit S-type immediate:
// {inst[31:25], inst[11:7]}.
func decodeImmS(ci uint32) uint32 {
	raw := bits(ci, 31, 25)<<5 | bits(ci, 11, 7)
	return sext(raw, 12)
}

// decodeImmB reconstructs the 13-bit (LSB-zero) B-type immediate:
// {inst[31], inst[7], inst[30:25], inst[11:8], 1'b0}. This is the
// ISA-correct scrambled encoding spec.md §4.2 mandates, not the source's
// simple two-field concatenation; see DESIGN.md Open Questions.
func decodeImmB(ci uint32) uint32 {
	raw := bit(ci, 31)<<12 | bit(ci, 7)<<11 | bits(ci, 30, 25)<<5 | bits(ci, 11, 8)<<1
	return sext(raw, 13)
}

// decodeImmJ reconstructs the 21-bit (LSB-zero) J-type immediate:
// {inst[31], inst[19:12], inst[20], inst[30:21], 1'b0}.
func decodeImmJ(ci uint32) uint32 {
	raw := bit(ci, 31)<<20 | bits(ci, 19, 12)<<12 | bit(ci, 20)<<11 | bits(ci, 30, 21)<<1
	return sext(raw, 21)
}

// decodeImmU reconstructs the U-type immediate: inst[31:12] << 12.
func decodeImmU(ci uint32) uint32 {
	return ci & 0xFFFFF000
}

// formatForOpcode maps a 7-bit opcode to its instruction Format.
func formatForOpcode(opcode uint32) Format {
	switch opcode {
	case OpcodeR:
		return FormatR
	case OpcodeILoad:
		return FormatILoad
	case OpcodeIImm:
		return FormatIImm
	case OpcodeIJump:
		return FormatIJump
	case OpcodeS:
		return FormatS
	case OpcodeB:
		return FormatB
	case OpcodeJ:
		return FormatJ
	case OpcodeU:
		return FormatU
	case OpcodeSystem:
		return FormatSystem
	case OpcodeNop:
		return FormatNop
	default:
		return FormatUndefined
	}
}

// Decode extracts the opcode and format-specific fields from a 32-bit
// instruction word. See spec.md §4.2.
func Decode(ci uint32) Inst {
	opcode := ci & 0b1111111
	format := formatForOpcode(opcode)
	in := Inst{
		Raw:    ci,
		Format: format,
		Opcode: opcode,
		Rd:     bits(ci, 11, 7),
		Funct3: bits(ci, 14, 12),
		Rs1:    bits(ci, 19, 15),
		Rs2:    bits(ci, 24, 20),
		Funct7: bits(ci, 31, 25),
	}
	switch format {
	case FormatILoad, FormatIImm, FormatIJump:
		in.Imm = decodeImmI(ci)
	case FormatS:
		in.Imm = decodeImmS(ci)
	case FormatB:
		in.Imm = decodeImmB(ci)
	case FormatJ:
		in.Imm = decodeImmJ(ci)
	case FormatU:
		in.Imm = decodeImmU(ci)
	}
	return in
}
