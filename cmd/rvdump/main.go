// Command rvdump loads a program file and prints its disassembly, the
// same listing `print` produces inside the interactive shell, without
// needing to start a simulator session.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/rv32sim/rv32sim/pkg/rv32"
)

func main() {
	log.SetFlags(0)
	filename := flag.String("f", "", "program file to disassemble")
	flag.Parse()
	if *filename == "" {
		log.Fatal("usage: rvdump -f <program-file>")
	}
	fp, err := os.Open(*filename)
	if err != nil {
		log.Fatal(err)
	}
	defer fp.Close()

	sim := rv32.NewSimulator(rv32.DefaultRegions())
	if err := sim.LoadProgram(fp); err != nil {
		log.Fatal(err)
	}
	os.Stdout.WriteString(sim.ListProgram())
}
