// SPDX-License-Identifier: MPL-2.0

// Package term implements the launcher's end-of-run pause, the equivalent of
// the cmd.exe "pause" builtin.
package term

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// DefaultPrompt matches the cmd.exe pause builtin's prompt text.
const DefaultPrompt = "Press any key to continue . . . "

// Pause prints the prompt to out and blocks until input arrives on in.
//
// When in is a terminal, it is switched to raw mode and a single keypress
// unblocks the pause. When in is not a terminal (piped stdin, tests), a
// single line (or EOF) unblocks it instead. A nil in defaults to os.Stdin.
func Pause(in *os.File, out io.Writer) error {
	if in == nil {
		in = os.Stdin
	}

	fmt.Fprint(out, DefaultPrompt)

	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		return pauseRaw(in, out, fd)
	}
	return pauseLine(in, out)
}

// pauseRaw reads one byte from a raw-mode terminal.
func pauseRaw(in *os.File, out io.Writer, fd int) error {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return pauseLine(in, out)
	}
	defer func() {
		_ = term.Restore(fd, state)
		// The keypress is not echoed in raw mode; move past the prompt.
		fmt.Fprintln(out)
	}()

	buf := make([]byte, 1)
	_, err = in.Read(buf)
	return err
}

// pauseLine reads until newline or EOF.
func pauseLine(in io.Reader, out io.Writer) error {
	_, err := bufio.NewReader(in).ReadString('\n')
	fmt.Fprintln(out)
	if err == io.EOF {
		return nil
	}
	return err
}
