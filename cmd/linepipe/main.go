// Command linepipe transforms lines of text with a pipeline such as `sort desc | uniq`.
//
//	linepipe [flags] 'pipeline' [file...]
//
// Without file, the text is read from stdin and written to stdout.
package main

import (
	"os"

	"github.com/mattn/go-isatty"
)

func main() {
	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		stdinIsTerminal: func() bool {
			fd := os.Stdin.Fd()

			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	}

	os.Exit(a.run(os.Args[1:]))
}
