package shell

import (
	"bufio"
	"fmt"
	"io"
)

// RunREPL drives a Shell from a plain stdin/stdout loop: print a prompt,
// read one line, execute it, print the result. Used for -notui and for
// any non-interactive input (piped scripts, tests).
func RunREPL(sh *Shell, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "rv32sim> ")
		if !scanner.Scan() {
			return
		}
		output, quit := sh.Execute(scanner.Text())
		if output != "" {
			fmt.Fprint(out, output)
		}
		if quit {
			return
		}
	}
}
