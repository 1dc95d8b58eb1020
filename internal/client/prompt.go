package client

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalPrompter reads from a terminal without echo when stdin is a TTY
// and falls back to line reads for pipes.
type TerminalPrompter struct {
	in     *bufio.Reader
	fd     int
	isTerm bool
	out    io.Writer
}

// NewTerminalPrompter writes prompts to out. out should be stderr so that
// command output on stdout can be piped.
func NewTerminalPrompter(in *os.File, out io.Writer) *TerminalPrompter {
	fd := int(in.Fd())
	return &TerminalPrompter{
		in:     bufio.NewReader(in),
		fd:     fd,
		isTerm: term.IsTerminal(fd),
		out:    out,
	}
}

func (p *TerminalPrompter) Password(prompt string) (string, error) {
	if !p.isTerm {
		return p.Line(prompt)
	}

	fmt.Fprint(p.out, prompt)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

func (p *TerminalPrompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	return readLine(p.in)
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
