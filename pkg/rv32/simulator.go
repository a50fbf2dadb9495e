package rv32

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// NumRegisters is the size of the general-purpose register file. x0 is
// hard-wired to zero (spec.md §3).
const NumRegisters = 32

// SyscallFunc is the hook invoked for a non-terminating ecall (any a0
// other than 10). It receives the a0 value and the Simulator so it can
// read/write the committed register file and memory in place; see
// SPEC_FULL.md §1.1 and pkg/console.
type SyscallFunc func(sim *Simulator, a0 uint32)

// Simulator is a single instance of the machine: the Memory, the
// committed State, the instruction counter, and the run flag. Spec.md
// §9 ("Global mutable state") calls for exactly this: one value owning
// everything the original's process-wide globals held, passed around
// explicitly instead of hidden in package state.
type Simulator struct {
	Mem        *Memory
	Cur        State
	RunFlag    bool
	InstrCount uint64

	textBase    uint32
	programSize uint32
	program     []uint32 // the raw words last loaded, for ListProgram/reset

	// Syscall, if set, is invoked when an ecall's a0 is not 10. Left
	// nil, such ecalls are silent no-ops, matching spec.md §4.3 exactly.
	Syscall SyscallFunc
}

// NewSimulator builds a Simulator over the given memory regions (use
// DefaultRegions for spec.md §6's defaults) and immediately resets it.
func NewSimulator(regions []Region) *Simulator {
	sim := &Simulator{Mem: NewMemory(regions)}
	sim.textBase = sim.Mem.TextBase()
	sim.initialize()
	return sim
}

// initialize implements the original's initialize(): zero memory, set
// PC to the text base, set sp (x2) to the stack top, raise run_flag.
// Unlike Reset, it does not reload a program (there may be none yet).
func (sim *Simulator) initialize() {
	sim.Mem.Reset()
	sim.Cur = State{PC: sim.textBase}
	sim.Cur.Regs[2] = sim.Mem.StackTop()
	sim.RunFlag = true
	sim.InstrCount = 0
}

// LoadProgram reads one hexadecimal 32-bit word per line (with or
// without a leading "0x"; a trailing "#" comment is discarded) and
// loads them consecutively into the text region, little-endian, 4
// bytes per word. See spec.md §6.
func (sim *Simulator) LoadProgram(r io.Reader) error {
	var words []uint32
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		value, err := strconv.ParseUint(strings.TrimPrefix(line, "0x"), 16, 32)
		if err != nil {
			return fmt.Errorf("rv32: malformed program word %q: %w", line, err)
		}
		words = append(words, uint32(value))
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	sim.program = words
	sim.loadWords()
	return nil
}

func (sim *Simulator) loadWords() {
	addr := sim.textBase
	for _, w := range sim.program {
		sim.Mem.WriteWord(addr, w)
		addr += 4
	}
	sim.programSize = uint32(len(sim.program))
}

// Reset clears all registers, zeroes every region, reloads the last
// loaded program, resets PC to the text base, and raises run_flag.
// Two consecutive resets yield identical Memory and State (spec.md §8).
func (sim *Simulator) Reset() {
	sim.Mem.Reset()
	sim.loadWords()
	sim.Cur = State{PC: sim.textBase}
	sim.Cur.Regs[2] = sim.Mem.StackTop()
	sim.InstrCount = 0
	sim.RunFlag = true
}

// ProgramSize returns the number of 32-bit words last loaded.
func (sim *Simulator) ProgramSize() uint32 { return sim.programSize }

// overrun reports whether PC has advanced past the last loaded word.
func (sim *Simulator) overrun() bool {
	return (sim.Cur.PC-sim.textBase)/4 >= sim.programSize
}

// Cycle performs one fetch-decode-execute-commit step (spec.md §4.3 "PC
// discipline" and §4.4). If PC has run off the end of the loaded
// program, it synthesizes an ecall a0=10 instead of fetching.
func (sim *Simulator) Cycle() {
	if !sim.RunFlag {
		return
	}
	var d Delta
	if sim.overrun() {
		d.halt(ErrHalted)
	} else {
		ci := sim.Mem.ReadWord(sim.Cur.PC)
		in := Decode(ci)
		d = Execute(sim.Cur, sim.Mem, in)
	}
	sim.apply(d)
	sim.InstrCount++
}

// apply commits a Delta: writes land on Cur, x0 is zeroed unconditionally
// (spec.md §3's write-suppression choice, enforced once here rather than
// by every executor arm — spec.md §9 "Register x0 write suppression"),
// and PC advances to the explicit jump target or, absent one, to
// Cur.PC+4. A sentinel (Delta.PCNext) replaces the source's "write
// current.pc and subtract 4" idiom per spec.md §4.3.
func (sim *Simulator) apply(d Delta) {
	if d.RegWrite != nil {
		sim.Cur.Regs[d.RegWrite.idx] = d.RegWrite.val
	}
	for _, w := range d.MemWrites {
		switch w.width {
		case widthByte:
			sim.Mem.WriteByte(w.addr, uint8(w.val))
		case widthHalf:
			sim.Mem.WriteHalf(w.addr, uint16(w.val))
		case widthWord:
			sim.Mem.WriteWord(w.addr, w.val)
		}
	}
	sim.Cur.Regs[0] = 0
	if d.PCNext != nil {
		sim.Cur.PC = *d.PCNext
	} else {
		sim.Cur.PC += 4
	}
	if d.Halt {
		sim.RunFlag = false
	}
	if d.Syscall != nil && sim.Syscall != nil {
		sim.Syscall(sim, *d.Syscall)
	}
}

// Run executes up to n cycles, stopping early if run_flag clears.
func (sim *Simulator) Run(n int) {
	for i := 0; i < n && sim.RunFlag; i++ {
		sim.Cycle()
	}
}

// RunAll executes cycles until run_flag clears.
func (sim *Simulator) RunAll() {
	for sim.RunFlag {
		sim.Cycle()
	}
}

// RegisterDump reproduces the original's rdump: instruction count, PC,
// all 32 registers, and the legacy HI/LO slots.
func (sim *Simulator) RegisterDump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "-------------------------------------\n")
	fmt.Fprintf(&b, "Dumping Register Content\n")
	fmt.Fprintf(&b, "-------------------------------------\n")
	fmt.Fprintf(&b, "# Instructions Executed\t: %d\n", sim.InstrCount)
	fmt.Fprintf(&b, "PC\t: 0x%08x\n", sim.Cur.PC)
	fmt.Fprintf(&b, "-------------------------------------\n")
	fmt.Fprintf(&b, "[Register]\t[Value]\n")
	fmt.Fprintf(&b, "-------------------------------------\n")
	for i := 0; i < NumRegisters; i++ {
		fmt.Fprintf(&b, "[R%d]\t: 0x%08x\n", i, sim.Cur.Regs[i])
	}
	fmt.Fprintf(&b, "-------------------------------------\n")
	fmt.Fprintf(&b, "[HI]\t: 0x%08x\n", sim.Cur.HI)
	fmt.Fprintf(&b, "[LO]\t: 0x%08x\n", sim.Cur.LO)
	fmt.Fprintf(&b, "-------------------------------------\n")
	return b.String()
}

// MemoryDump reproduces the original's mdump: a word-aligned listing
// of memory from start to stop, inclusive.
func (sim *Simulator) MemoryDump(start, stop uint32) string {
	var b strings.Builder
	fmt.Fprintf(&b, "-------------------------------------------------------------\n")
	fmt.Fprintf(&b, "Memory content [0x%08x..0x%08x] :\n", start, stop)
	fmt.Fprintf(&b, "-------------------------------------------------------------\n")
	fmt.Fprintf(&b, "\t[Address in Hex (Dec) ]\t[Value]\n")
	for addr := start; addr <= stop; addr += 4 {
		fmt.Fprintf(&b, "\t0x%08x (%d) :\t0x%08x\n", addr, addr, sim.Mem.ReadWord(addr))
		if addr+4 < addr {
			break // guard against wraparound when stop is 0xFFFFFFFF
		}
	}
	return b.String()
}

// ListProgram disassembles every loaded word in program order,
// reproducing the original's print_program/print_instruction walk.
func (sim *Simulator) ListProgram() string {
	var b strings.Builder
	for i := uint32(0); i < sim.programSize; i++ {
		addr := sim.textBase + i*4
		ci := sim.Mem.ReadWord(addr)
		fmt.Fprintf(&b, "0x%08x: %s\n", addr, Disassemble(ci))
	}
	return b.String()
}
