// Package shell implements the interactive command surface SPEC_FULL.md
// §2.4 and spec.md §6 define over a pkg/rv32.Simulator: sim, run, rdump,
// reset, input, mdump, high, low, print, ?, quit. The command dispatcher
// in this file is UI-agnostic so both the plain REPL (repl.go) and the
// tview TUI (tui.go) drive the same logic.
package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rv32sim/rv32sim/pkg/rv32"
)

const helpText = `Commands:
  sim                 run to completion
  run <n>             run n cycles
  rdump                print registers, PC, instruction count, HI, LO
  reset                reset and reload program
  input <reg> <val>   set register <reg> (decimal index) to <val> (signed)
  mdump <start> <stop> print memory as 32-bit words (hex addresses)
  high <val>           set HI
  low <val>            set LO
  print                disassemble the loaded program
  ?                    this help
  quit                 exit
`

// Shell dispatches one command line at a time against a Simulator. It
// holds no UI state; New's caller owns presentation.
type Shell struct {
	Sim *rv32.Simulator
}

// New builds a Shell over sim.
func New(sim *rv32.Simulator) *Shell {
	return &Shell{Sim: sim}
}

// Execute parses and runs one command line, returning the text to
// display and whether the shell should exit (the `quit` command).
func (s *Shell) Execute(line string) (output string, quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "sim":
		return s.cmdSim(), false
	case "run":
		return s.cmdRun(args)
	case "rdump":
		return s.Sim.RegisterDump(), false
	case "reset":
		s.Sim.Reset()
		return "machine reset.\n", false
	case "input":
		return s.cmdInput(args)
	case "mdump":
		return s.cmdMdump(args)
	case "high":
		return s.cmdHigh(args)
	case "low":
		return s.cmdLow(args)
	case "print":
		return s.Sim.ListProgram(), false
	case "?", "help":
		return helpText, false
	case "quit", "exit":
		return "bye.\n", true
	default:
		return fmt.Sprintf("unknown command %q (try ?)\n", cmd), false
	}
}

func (s *Shell) cmdSim() string {
	s.Sim.RunAll()
	return terminationBanner(s.Sim)
}

func (s *Shell) cmdRun(args []string) (string, bool) {
	if len(args) != 1 {
		return "usage: run <n>\n", false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Sprintf("run: %v\n", err), false
	}
	s.Sim.Run(n)
	if !s.Sim.RunFlag {
		return terminationBanner(s.Sim), false
	}
	return "", false
}

func (s *Shell) cmdInput(args []string) (string, bool) {
	if len(args) != 2 {
		return "usage: input <reg> <val>\n", false
	}
	reg, err := strconv.Atoi(args[0])
	if err != nil || reg < 0 || reg >= rv32.NumRegisters {
		return fmt.Sprintf("input: bad register %q\n", args[0]), false
	}
	val, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Sprintf("input: %v\n", err), false
	}
	if reg != 0 {
		s.Sim.Cur.Regs[reg] = uint32(val)
	}
	return "", false
}

func (s *Shell) cmdMdump(args []string) (string, bool) {
	if len(args) != 2 {
		return "usage: mdump <start> <stop>\n", false
	}
	start, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 32)
	if err != nil {
		return fmt.Sprintf("mdump: %v\n", err), false
	}
	stop, err := strconv.ParseUint(strings.TrimPrefix(args[1], "0x"), 16, 32)
	if err != nil {
		return fmt.Sprintf("mdump: %v\n", err), false
	}
	return s.Sim.MemoryDump(uint32(start), uint32(stop)), false
}

func (s *Shell) cmdHigh(args []string) (string, bool) {
	if len(args) != 1 {
		return "usage: high <val>\n", false
	}
	val, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Sprintf("high: %v\n", err), false
	}
	s.Sim.Cur.HI = uint32(val)
	return "", false
}

func (s *Shell) cmdLow(args []string) (string, bool) {
	if len(args) != 1 {
		return "usage: low <val>\n", false
	}
	val, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Sprintf("low: %v\n", err), false
	}
	s.Sim.Cur.LO = uint32(val)
	return "", false
}

func terminationBanner(sim *rv32.Simulator) string {
	return fmt.Sprintf("-------------------------------------\nSimulation (possibly) Ended\n-------------------------------------\n# Instructions Executed\t: %d\n", sim.InstrCount)
}
