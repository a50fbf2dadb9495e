package rv32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassembleCanonicalForms(t *testing.T) {
	assert.Equal(t, "add x7, x5, x6", Disassemble(encodeR(0, 6, 5, 0, 7, OpcodeR)))
	assert.Equal(t, "sub x7, x5, x6", Disassemble(encodeR(0x20, 6, 5, 0, 7, OpcodeR)))
	assert.Equal(t, "addi x5, x0, 7", Disassemble(encodeI(7, 0, 0, 5, OpcodeIImm)))
	assert.Equal(t, "lui x5, 16", Disassemble(luiWord(5, 16)))
	assert.Equal(t, "lw x6, 0(x1)", Disassemble(iLoadWord(1, 0, 6, 2, OpcodeILoad)))
	assert.Equal(t, "sw x5, 0(x1)", Disassemble(sWord(0, 1, 5, 2, OpcodeS)))
	assert.Equal(t, "beq x1, x2, -4", Disassemble(bWord(1, 2, 0, -4)))
	assert.Equal(t, "jal x1, 12", Disassemble(jWord(1, 12)))
}

func TestDisassemblePseudoInstructionFolding(t *testing.T) {
	assert.Equal(t, "jr x1", Disassemble(encodeI(0, 1, 0, 0, OpcodeIJump)))
	assert.Equal(t, "j 12", Disassemble(jWord(0, 12)))
	assert.Equal(t, "bgtz x2, 8", Disassemble(bWord(0, 2, 4, 8)))
	assert.Equal(t, "bltz x1, 8", Disassemble(bWord(1, 0, 4, 8)))
	assert.Equal(t, "blez x2, 8", Disassemble(bWord(0, 2, 5, 8)))
	assert.Equal(t, "bgez x1, 8", Disassemble(bWord(1, 0, 5, 8)))
}

func TestDisassembleUndefinedOpcode(t *testing.T) {
	assert.Contains(t, Disassemble(0xFFFFFFFF), "unknown")
}
