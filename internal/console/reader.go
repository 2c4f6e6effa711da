package console

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompt is shown before every command.
const Prompt = "> "

// Reader reads player commands one line at a time. On a terminal it
// provides line editing and history; otherwise it scans plain lines.
type Reader struct {
	prompt string
	out    io.Writer

	scanner *bufio.Scanner

	fd       int
	terminal *term.Terminal
}

// NewReader reads lines from in, echoing the prompt to out.
func NewReader(in io.Reader, out io.Writer, prompt string) *Reader {
	return &Reader{
		prompt:  prompt,
		out:     out,
		scanner: bufio.NewScanner(in),
	}
}

// NewStdinReader reads from standard input, with line editing when it is a
// terminal.
func NewStdinReader(prompt string) *Reader {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return NewReader(os.Stdin, os.Stdout, prompt)
	}

	rw := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}

	return &Reader{
		prompt:   prompt,
		out:      os.Stdout,
		fd:       fd,
		terminal: term.NewTerminal(rw, prompt),
	}
}

// ReadLine returns the next line without its line ending. It returns io.EOF
// when input ends or the player presses Ctrl-D.
func (r *Reader) ReadLine() (string, error) {
	if r.terminal != nil {
		return r.readTerminal()
	}

	if _, err := io.WriteString(r.out, r.prompt); err != nil {
		return "", err
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(r.scanner.Text(), "\r"), nil
}

// readTerminal only holds the terminal in raw mode while a line is being
// edited, so everything printed between prompts keeps normal line endings.
func (r *Reader) readTerminal() (string, error) {
	oldState, err := term.MakeRaw(r.fd)
	if err != nil {
		return "", err
	}
	defer func() { _ = term.Restore(r.fd, oldState) }()

	return r.terminal.ReadLine()
}
