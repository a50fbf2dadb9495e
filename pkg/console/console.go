// Package console implements the ECALL-backed I/O device SPEC_FULL.md
// §1.1 layers on top of pkg/rv32's syscall hook: the small MARS/RARS-style
// syscall table (print_int, print_string, read_int, print_char) a fixture
// program can use without pkg/rv32 itself knowing anything about I/O
// policy.
package console

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rv32sim/rv32sim/pkg/rv32"
)

// The following constants define the a0 syscall numbers this console
// understands, matching the MARS/RARS/Venus convention. EXIT is handled
// unconditionally by pkg/rv32 itself (spec.md §4.3) and never reaches
// here; it is listed for documentation.
const (
	SyscallPrintInt    = 1
	SyscallPrintString = 4
	SyscallReadInt     = 5
	SyscallPrintChar   = 11
	SyscallExit        = 10
)

// Console is a stdio-backed ECALL device: it writes PRINT_* syscalls to
// Out and reads READ_INT from In. Register conventions follow
// SPEC_FULL.md §1.1: a1 carries the argument (the value to print, or the
// address of a NUL-terminated string), a0 receives the result of a read.
type Console struct {
	In  *bufio.Reader
	Out io.Writer
}

// New wraps r/w as a Console. Use os.Stdin/os.Stdout for the interactive
// shell, or any io.Reader/io.Writer (including a RemoteConsole) for tests
// and remote consoles.
func New(r io.Reader, w io.Writer) *Console {
	return &Console{In: bufio.NewReader(r), Out: w}
}

// Syscall implements rv32.SyscallFunc. It is installed as
// Simulator.Syscall and invoked once per non-terminating ecall.
func (c *Console) Syscall(sim *rv32.Simulator, a0 uint32) {
	const regA1 = 11
	switch a0 {
	case SyscallPrintInt:
		fmt.Fprintf(c.Out, "%d", int32(sim.Cur.Regs[regA1]))
	case SyscallPrintChar:
		fmt.Fprintf(c.Out, "%c", byte(sim.Cur.Regs[regA1]))
	case SyscallPrintString:
		io.WriteString(c.Out, c.readCString(sim, sim.Cur.Regs[regA1]))
	case SyscallReadInt:
		sim.Cur.Regs[10] = c.readInt()
	default:
		fmt.Fprintf(c.Out, "console: unhandled syscall a0=%d\n", a0)
	}
}

// readCString walks memory from addr until a NUL byte or an out-of-range
// read (which pkg/rv32.Memory reports as a silent zero, spec.md §2.3).
func (c *Console) readCString(sim *rv32.Simulator, addr uint32) string {
	var b []byte
	for i := 0; i < 1<<16; i++ {
		ch := sim.Mem.ReadByte(addr + uint32(i))
		if ch == 0 {
			break
		}
		b = append(b, ch)
	}
	return string(b)
}

func (c *Console) readInt() uint32 {
	line, err := c.In.ReadString('\n')
	if err != nil && line == "" {
		return 0
	}
	var v int32
	fmt.Sscanf(line, "%d", &v)
	return uint32(v)
}

var _ rv32.SyscallFunc = (&Console{}).Syscall
