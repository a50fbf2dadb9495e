package rv32

// State is the committed architectural state visible to the instruction
// about to execute: PC, the 32 general registers, and the two legacy
// HI/LO scratch slots kept for shell compatibility (spec.md §3). The
// executor never writes HI/LO; only the shell does, via Simulator.
type State struct {
	PC   uint32
	Regs [32]uint32
	HI   uint32
	LO   uint32
}

// regWrite is a pending write to a general register, staged by Execute
// and applied by the cycle driver.
type regWrite struct {
	idx uint32
	val uint32
}

// memWidth is the width of a pending memory write.
type memWidth int

const (
	widthByte memWidth = iota
	widthHalf
	widthWord
)

// memWrite is a pending write to memory, staged by Execute and applied
// by the cycle driver after Execute returns.
type memWrite struct {
	width memWidth
	addr  uint32
	val   uint32
}

// Delta is the staging snapshot spec.md §9 replaces CurrentState/
// NextState with: everything one instruction's execution produces,
// without yet being applied to committed state. At most one register is
// ever written per instruction in this ISA subset, so RegWrite is a
// single optional value rather than a slice.
type Delta struct {
	RegWrite  *regWrite
	MemWrites []memWrite
	PCNext    *uint32 // explicit jump/branch target; nil means "fall through"
	Halt      bool
	HaltErr   error
	Syscall   *uint32 // a0 value of a non-terminating ecall, for the Simulator's Syscall hook
}

func (d *Delta) setReg(idx, val uint32) {
	d.RegWrite = &regWrite{idx: idx, val: val}
}

func (d *Delta) writeByte(addr, val uint32) {
	d.MemWrites = append(d.MemWrites, memWrite{width: widthByte, addr: addr, val: val})
}

func (d *Delta) writeHalf(addr, val uint32) {
	d.MemWrites = append(d.MemWrites, memWrite{width: widthHalf, addr: addr, val: val})
}

func (d *Delta) writeWord(addr, val uint32) {
	d.MemWrites = append(d.MemWrites, memWrite{width: widthWord, addr: addr, val: val})
}

func (d *Delta) jumpTo(pc uint32) {
	d.PCNext = &pc
}

func (d *Delta) halt(err error) {
	d.Halt = true
	d.HaltErr = err
}
