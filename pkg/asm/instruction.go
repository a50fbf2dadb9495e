package asm

import (
	"fmt"
	"strconv"

	"github.com/rv32sim/rv32sim/pkg/rv32"
)

// Instruction is one parsed line of assembly, not yet encoded because its
// immediate may reference a label that appears later in the file. This
// mirrors the teacher's two-pass shape: collect every Instruction and its
// label first, then Encode once every label is known.
type Instruction interface {
	// Err returns the parse error for this line, if parsing itself failed.
	Err() error
	// Label returns the label attached to this line, or "" if none.
	Label() string
	// Line returns the 1-based source line number, for diagnostics.
	Line() int
	// Encode produces the instruction word. labels maps a label name to
	// its word index (not byte address); pc is this instruction's own
	// word index.
	Encode(labels map[string]int64, pc uint32) (uint32, error)
}

// instErr carries a parse-time error so the pipeline can report it with
// its original line number instead of failing silently.
type instErr struct {
	lineno int
	err    error
}

func (i instErr) Err() error  { return i.err }
func (i instErr) Label() string { return "" }
func (i instErr) Line() int   { return i.lineno }
func (i instErr) Encode(map[string]int64, uint32) (uint32, error) {
	return 0, fmt.Errorf("%w: %v", ErrCannotEncode, i.err)
}

var _ Instruction = instErr{}

// base holds the fields every concrete instruction needs: its source
// line and optional label.
type base struct {
	lineno int
	label  string
}

func (b base) Label() string { return b.label }
func (b base) Line() int     { return b.lineno }
func (b base) Err() error    { return nil }

// instR is add/sub/or/and: Rd, Rs1, Rs2, funct3, funct7.
type instR struct {
	base
	Rd, Rs1, Rs2   uint32
	Funct3, Funct7 uint32
}

func (ia instR) Encode(map[string]int64, uint32) (uint32, error) {
	return ia.Funct7<<25 | ia.Rs2<<20 | ia.Rs1<<15 | ia.Funct3<<12 | ia.Rd<<7 | rv32.OpcodeR, nil
}

// instILoad is lb/lh/lw: Rd, Rs1, funct3, an absolute numeric offset.
type instILoad struct {
	base
	Rd, Rs1 uint32
	Funct3  uint32
	Imm     string
}

func (ia instILoad) Encode(labels map[string]int64, pc uint32) (uint32, error) {
	imm, err := resolveAbsolute(labels, ia.Imm, 12, ia.lineno)
	if err != nil {
		return 0, err
	}
	return (imm&0xFFF)<<20 | ia.Rs1<<15 | ia.Funct3<<12 | ia.Rd<<7 | rv32.OpcodeILoad, nil
}

// instIImm is addi/xori/ori/andi/slli/srli/srai: Rd, Rs1, funct3, and
// either an absolute 12-bit immediate (arithmetic/logic ops) or a 5-bit
// shift amount encoded in the low bits with Funct7 in the high ones.
type instIImm struct {
	base
	Rd, Rs1        uint32
	Funct3, Funct7 uint32
	Imm            string
	IsShift        bool
}

func (ia instIImm) Encode(labels map[string]int64, pc uint32) (uint32, error) {
	if ia.IsShift {
		shamt, err := resolveShamt(ia.Imm, ia.lineno)
		if err != nil {
			return 0, err
		}
		imm12 := ia.Funct7<<5 | (shamt & 0x1F)
		return imm12<<20 | ia.Rs1<<15 | ia.Funct3<<12 | ia.Rd<<7 | rv32.OpcodeIImm, nil
	}
	imm, err := resolveAbsolute(labels, ia.Imm, 12, ia.lineno)
	if err != nil {
		return 0, err
	}
	return (imm&0xFFF)<<20 | ia.Rs1<<15 | ia.Funct3<<12 | ia.Rd<<7 | rv32.OpcodeIImm, nil
}

// instIJump is jalr: Rd, Rs1, an absolute numeric offset.
type instIJump struct {
	base
	Rd, Rs1 uint32
	Imm     string
}

func (ia instIJump) Encode(labels map[string]int64, pc uint32) (uint32, error) {
	imm, err := resolveAbsolute(labels, ia.Imm, 12, ia.lineno)
	if err != nil {
		return 0, err
	}
	return (imm&0xFFF)<<20 | ia.Rs1<<15 | ia.Rd<<7 | rv32.OpcodeIJump, nil
}

// instS is sb/sh/sw: Rs1 (base), Rs2 (value), funct3, an absolute offset.
type instS struct {
	base
	Rs1, Rs2 uint32
	Funct3   uint32
	Imm      string
}

func (ia instS) Encode(labels map[string]int64, pc uint32) (uint32, error) {
	imm, err := resolveAbsolute(labels, ia.Imm, 12, ia.lineno)
	if err != nil {
		return 0, err
	}
	lo, hi := imm&0x1F, (imm>>5)&0x7F
	return hi<<25 | ia.Rs2<<20 | ia.Rs1<<15 | ia.Funct3<<12 | lo<<7 | rv32.OpcodeS, nil
}

// instB is beq/bne/blt/bge/bltu/bgeu: Rs1, Rs2, funct3, and a label or
// signed byte offset resolved PC-relative.
type instB struct {
	base
	Rs1, Rs2 uint32
	Funct3   uint32
	Target   string
}

func (ia instB) Encode(labels map[string]int64, pc uint32) (uint32, error) {
	offset, err := resolveRelative(labels, ia.Target, pc, 13, ia.lineno)
	if err != nil {
		return 0, err
	}
	u := uint32(offset)
	b31 := (u >> 12) & 1
	b7 := (u >> 11) & 1
	b30_25 := (u >> 5) & 0x3F
	b11_8 := (u >> 1) & 0xF
	return b31<<31 | b30_25<<25 | ia.Rs2<<20 | ia.Rs1<<15 | ia.Funct3<<12 | b11_8<<8 | b7<<7 | rv32.OpcodeB, nil
}

// instJ is jal: Rd and a label or signed byte offset resolved PC-relative.
type instJ struct {
	base
	Rd     uint32
	Target string
}

func (ia instJ) Encode(labels map[string]int64, pc uint32) (uint32, error) {
	offset, err := resolveRelative(labels, ia.Target, pc, 21, ia.lineno)
	if err != nil {
		return 0, err
	}
	u := uint32(offset)
	b31 := (u >> 20) & 1
	b19_12 := (u >> 12) & 0xFF
	b11 := (u >> 11) & 1
	b10_1 := (u >> 1) & 0x3FF
	return b31<<31 | b10_1<<21 | b11<<20 | b19_12<<12 | ia.Rd<<7 | rv32.OpcodeJ, nil
}

// instU is lui: Rd and an absolute 20-bit upper immediate.
type instU struct {
	base
	Rd  uint32
	Imm string
}

func (ia instU) Encode(labels map[string]int64, pc uint32) (uint32, error) {
	// lui's immediate is a raw 20-bit field placed directly at inst[31:12]
	// (rv32.decodeImmU does not sign-extend it further), so it's range
	// checked as unsigned 0..0xFFFFF rather than signed.
	imm, err := resolveAbsoluteUnsigned(labels, ia.Imm, 20, ia.lineno)
	if err != nil {
		return 0, err
	}
	return (imm&0xFFFFF)<<12 | ia.Rd<<7 | rv32.OpcodeU, nil
}

// instSystem is ecall: no operands.
type instSystem struct{ base }

func (ia instSystem) Encode(map[string]int64, uint32) (uint32, error) {
	return rv32.OpcodeSystem, nil
}

// instWord is the `.word` directive: a raw 32-bit value, used to lay
// down literal data words in the text region (spec.md §6 loads one
// region, so a fixture program's constants live inline).
type instWord struct {
	base
	Imm string
}

func (ia instWord) Encode(labels map[string]int64, pc uint32) (uint32, error) {
	imm, err := resolveAbsolute(labels, ia.Imm, 32, ia.lineno)
	if err != nil {
		return 0, err
	}
	return imm, nil
}

// resolveAbsolute parses a decimal/hex literal or looks up a label's word
// index as an absolute value, then range-checks it against `bits` bits
// (signed range).
func resolveAbsolute(labels map[string]int64, s string, bits, lineno int) (uint32, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		idx, ok := labels[s]
		if !ok {
			return 0, fmt.Errorf("%w: %q on line %d", ErrUnknownLabel, s, lineno)
		}
		v = idx
	}
	return castToUint32(v, bits, lineno)
}

// resolveRelative is like resolveAbsolute but for branch/jump targets: a
// bare label is turned into a PC-relative byte offset; a bare numeric
// literal is already treated as the byte offset.
func resolveRelative(labels map[string]int64, s string, pc uint32, bits, lineno int) (int64, error) {
	if idx, ok := labels[s]; ok {
		return idx*4 - int64(pc)*4, castRangeErr(idx*4-int64(pc)*4, bits, lineno)
	}
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q on line %d", ErrUnknownLabel, s, lineno)
	}
	return v, castRangeErr(v, bits, lineno)
}

func castRangeErr(v int64, bits, lineno int) error {
	if v < -(1<<(bits-1)) || v > (1<<(bits-1))-1 {
		return fmt.Errorf("%w: %d needs %d bits on line %d", ErrOutOfRange, v, bits, lineno)
	}
	return nil
}

// resolveAbsoluteUnsigned is resolveAbsolute for fields with no sign bit
// (only lui's 20-bit immediate uses this): a bare label resolves to its
// word index, a literal is parsed and range-checked as 0..2^bits-1.
func resolveAbsoluteUnsigned(labels map[string]int64, s string, bits, lineno int) (uint32, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		idx, ok := labels[s]
		if !ok {
			return 0, fmt.Errorf("%w: %q on line %d", ErrUnknownLabel, s, lineno)
		}
		v = idx
	}
	if v < 0 || v > (1<<bits)-1 {
		return 0, fmt.Errorf("%w: %d needs %d unsigned bits on line %d", ErrOutOfRange, v, bits, lineno)
	}
	return uint32(v), nil
}

// resolveShamt parses a shift amount as an unsigned 0-31 literal (shift
// amounts are never label references).
func resolveShamt(s string, lineno int) (uint32, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q on line %d", ErrSyntax, s, lineno)
	}
	if v < 0 || v > 31 {
		return 0, fmt.Errorf("%w: shift amount %d out of range 0-31 on line %d", ErrOutOfRange, v, lineno)
	}
	return uint32(v), nil
}

func castToUint32(v int64, bits, lineno int) (uint32, error) {
	if err := castRangeErr(v, bits, lineno); err != nil {
		return 0, err
	}
	mask := uint32((uint64(1) << uint(bits)) - 1)
	return uint32(v) & mask, nil
}
