// Package asm assembles the RV32I subset pkg/rv32 executes into the
// hex-per-line program text pkg/rv32.Simulator.LoadProgram reads. It
// exists to produce test fixtures and small standalone programs without
// hand-encoding instruction words.
package asm

import (
	"fmt"
	"io"
)

// InstructionOrError is one assembled word, or the error that occurred
// encoding it, tagged with its source line for diagnostics.
type InstructionOrError struct {
	Instruction uint32
	Error       error
	Lineno      int
}

// HexLine renders the word the way pkg/rv32.Simulator.LoadProgram expects
// to read it back, or returns the encoding error.
func (ioe InstructionOrError) HexLine() (string, error) {
	if ioe.Error != nil {
		return "", ioe.Error
	}
	return fmt.Sprintf("0x%08x\n", ioe.Instruction), nil
}

// StartAssembler starts the assembler in a background goroutine and
// returns a channel of InstructionOrError, one per instruction line (blank,
// comment-only and label-only lines produce none). A parse error is sent
// as a single entry and ends the stream.
func StartAssembler(r io.Reader) <-chan InstructionOrError {
	out := make(chan InstructionOrError)
	go AssemblerAsync(r, out)
	return out
}

// AssemblerAsync runs the lexer and parser to completion, records every
// label's word index, and then encodes each instruction now that forward
// references are resolvable.
func AssemblerAsync(r io.Reader, out chan<- InstructionOrError) {
	defer close(out)
	var idx int64
	labels := make(map[string]int64)
	var instructions []Instruction
	for instr := range StartParsing(StartLexing(r)) {
		if instr.Err() != nil {
			out <- InstructionOrError{Error: instr.Err(), Lineno: instr.Line()}
			return
		}
		if instr.Label() != "" {
			labels[instr.Label()] = idx
		}
		instructions = append(instructions, instr)
		idx++
	}
	for pc, instr := range instructions {
		encoded, err := instr.Encode(labels, uint32(pc))
		if err != nil {
			out <- InstructionOrError{Error: err, Lineno: instr.Line()}
			continue
		}
		out <- InstructionOrError{Instruction: encoded, Lineno: instr.Line()}
	}
}

// Assemble runs the pipeline to completion and writes the resulting hex
// program to w, stopping at the first encoding error.
func Assemble(r io.Reader, w io.Writer) error {
	for ioe := range StartAssembler(r) {
		line, err := ioe.HexLine()
		if err != nil {
			return fmt.Errorf("asm: line %d: %w", ioe.Lineno, err)
		}
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
