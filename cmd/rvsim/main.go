// Command rvsim is the interactive RV32I simulator: it loads a program,
// wires up the ECALL console, and drops into the shell spec.md §6
// describes (sim, run, rdump, reset, input, mdump, high, low, print, ?,
// quit), either as a full-screen TUI or, with -notui, a plain REPL.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/rv32sim/rv32sim/internal/config"
	"github.com/rv32sim/rv32sim/internal/shell"
	"github.com/rv32sim/rv32sim/pkg/console"
	"github.com/rv32sim/rv32sim/pkg/rv32"
)

func main() {
	log.SetFlags(0)
	filename := flag.String("f", "", "program file to load")
	configPath := flag.String("config", "", "TOML config file (default: platform config dir)")
	notui := flag.Bool("notui", false, "use a plain stdin/stdout REPL instead of the full-screen shell")
	remote := flag.String("remote-console", "", "listen for a TCP console instead of using stdio (host:port)")
	verbose := flag.Bool("v", false, "be verbose")
	flag.Parse()

	if *filename == "" {
		log.Print("usage: rvsim -f <program-file> [-config <file>] [-notui] [-remote-console <addr>] [-v]")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	fp, err := os.Open(*filename)
	if err != nil {
		log.Print(err)
		os.Exit(-1)
	}
	defer fp.Close()

	sim := rv32.NewSimulator(cfg.Regions())
	if err := sim.LoadProgram(fp); err != nil {
		log.Fatal(err)
	}
	if *verbose {
		log.Printf("rvsim: loaded %d words", sim.ProgramSize())
	}

	con, closer := buildConsole(cfg, *remote)
	if closer != nil {
		defer closer()
	}
	sim.Syscall = con.Syscall

	sh := shell.New(sim)
	if cfg.Execution.Notui || *notui {
		shell.RunREPL(sh, os.Stdin, os.Stdout)
		return
	}
	if err := shell.NewTUI(sh).Run(); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// buildConsole attaches the ECALL console to stdio, or to a TCP remote
// console when requested either on the command line or in config.
func buildConsole(cfg *config.Config, remoteFlag string) (*console.Console, func()) {
	addr := remoteFlag
	if addr == "" {
		addr = cfg.Execution.RemoteConsole
	}
	if addr == "" {
		return console.New(os.Stdin, os.Stdout), nil
	}
	rc, err := console.ListenAndAccept(addr)
	if err != nil {
		log.Fatal(err)
	}
	return console.New(rc, rc), func() { rc.Close() }
}
