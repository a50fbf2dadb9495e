package shell

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rv32sim/rv32sim/pkg/rv32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell(t *testing.T, words []uint32) *Shell {
	t.Helper()
	sim := rv32.NewSimulator(rv32.DefaultRegions())
	var b strings.Builder
	for _, w := range words {
		b.WriteString(hexWord(w))
		b.WriteByte('\n')
	}
	require.NoError(t, sim.LoadProgram(strings.NewReader(b.String())))
	return New(sim)
}

func hexWord(w uint32) string {
	const digits = "0123456789abcdef"
	buf := make([]byte, 10)
	buf[0], buf[1] = '0', 'x'
	for i := 9; i >= 2; i-- {
		buf[i] = digits[w&0xF]
		w >>= 4
	}
	return string(buf)
}

func addi(imm, rs1, rd uint32) uint32 {
	const opIImm = 0b0010011
	return (imm&0xFFF)<<20 | rs1<<15 | rd<<7 | opIImm
}

func ecall() uint32 { return 0b1110011 }

func TestSimRunsToCompletion(t *testing.T) {
	sh := newTestShell(t, []uint32{addi(7, 0, 5), addi(10, 0, 10), ecall()})
	out, quit := sh.Execute("sim")
	assert.False(t, quit)
	assert.Contains(t, out, "Instructions Executed")
	assert.EqualValues(t, 7, sh.Sim.Cur.Regs[5])
}

func TestRunStopsAtN(t *testing.T) {
	sh := newTestShell(t, []uint32{addi(1, 1, 1), addi(1, 1, 1), addi(10, 0, 10), ecall()})
	out, quit := sh.Execute("run 1")
	assert.False(t, quit)
	assert.Empty(t, out)
	assert.EqualValues(t, 1, sh.Sim.Cur.Regs[1])
}

func TestInputSetsRegisterButNotX0(t *testing.T) {
	sh := newTestShell(t, []uint32{ecall()})
	_, _ = sh.Execute("input 5 -3")
	assert.EqualValues(t, uint32(int32(-3)), sh.Sim.Cur.Regs[5])
	_, _ = sh.Execute("input 0 99")
	assert.EqualValues(t, 0, sh.Sim.Cur.Regs[0])
}

func TestMdumpReportsWords(t *testing.T) {
	sh := newTestShell(t, []uint32{ecall()})
	sh.Sim.Mem.WriteWord(rv32.DefaultDataBegin, 0xCAFEBABE)
	out, _ := sh.Execute(fmt.Sprintf("mdump 0x%08x 0x%08x", rv32.DefaultDataBegin, rv32.DefaultDataBegin+4))
	assert.Contains(t, out, "0xcafebabe")
}

func TestHighLowSetState(t *testing.T) {
	sh := newTestShell(t, []uint32{ecall()})
	sh.Execute("high 5")
	sh.Execute("low 9")
	assert.EqualValues(t, 5, sh.Sim.Cur.HI)
	assert.EqualValues(t, 9, sh.Sim.Cur.LO)
}

func TestResetReloadsProgram(t *testing.T) {
	sh := newTestShell(t, []uint32{addi(7, 0, 5), addi(10, 0, 10), ecall()})
	sh.Execute("sim")
	out, _ := sh.Execute("reset")
	assert.Contains(t, out, "reset")
	assert.EqualValues(t, 0, sh.Sim.Cur.Regs[5])
	assert.True(t, sh.Sim.RunFlag)
}

func TestPrintDisassemblesProgram(t *testing.T) {
	sh := newTestShell(t, []uint32{addi(7, 0, 5)})
	out, _ := sh.Execute("print")
	assert.Contains(t, out, "addi x5, x0, 7")
}

func TestQuitSignalsExit(t *testing.T) {
	sh := newTestShell(t, []uint32{ecall()})
	_, quit := sh.Execute("quit")
	assert.True(t, quit)
}

func TestHelpListsCommands(t *testing.T) {
	sh := newTestShell(t, []uint32{ecall()})
	out, quit := sh.Execute("?")
	assert.False(t, quit)
	assert.Contains(t, out, "rdump")
	assert.Contains(t, out, "mdump")
}
