package rv32

import "errors"

// The following errors may be returned by Execute or surfaced through
// Delta.HaltErr by the cycle driver. See spec.md §7.
var (
	// ErrHalted indicates the machine terminated via ecall a0=10 or by
	// running off the end of the loaded program.
	ErrHalted = errors.New("rv32: halted")

	// ErrUndefinedOpcode indicates the fetched word's opcode field does
	// not match any recognized instruction format.
	ErrUndefinedOpcode = errors.New("rv32: undefined opcode")

	// ErrUndefinedFunct indicates the opcode was recognized but the
	// funct3/funct7 combination is reserved (e.g. a bad SRLI/SRAI funct7).
	ErrUndefinedFunct = errors.New("rv32: undefined funct3/funct7")

	// ErrMemoryFault is reserved for a future strict memory mode; the
	// current Memory never returns it (out-of-region accesses read zero
	// and discard writes instead, per spec.md §7 MemoryOutOfRange).
	ErrMemoryFault = errors.New("rv32: memory fault")
)
