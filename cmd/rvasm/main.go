// Command rvasm assembles an RV32I source file into the hex-per-line
// program text pkg/rv32.Simulator.LoadProgram reads.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/rv32sim/rv32sim/pkg/asm"
)

func main() {
	log.SetFlags(0)
	filename := flag.String("f", "", "assembly source file")
	output := flag.String("o", "", "output file (default: stdout)")
	flag.Parse()
	if *filename == "" {
		log.Fatal("usage: rvasm -f <assembly-source-file> [-o <output-file>]")
	}
	fp, err := os.Open(*filename)
	if err != nil {
		log.Fatal(err)
	}
	defer fp.Close()

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	if err := asm.Assemble(fp, out); err != nil {
		log.Fatal(err)
	}
}
