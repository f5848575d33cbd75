package term

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	xterm "golang.org/x/term"
)

// Dialog asks yes/no questions on an input stream and prints alerts.
type Dialog struct {
	mu          sync.Mutex
	in          *bufio.Reader
	out         io.Writer
	assumeYes   bool
	interactive bool
}

// NewDialog creates a dialog. With assumeYes every confirmation is accepted
// without prompting; otherwise a non-interactive input declines them all.
func NewDialog(in io.Reader, out io.Writer, assumeYes, interactive bool) *Dialog {
	return &Dialog{
		in:          bufio.NewReader(in),
		out:         out,
		assumeYes:   assumeYes,
		interactive: interactive,
	}
}

// NewStdDialog prompts on stdin and writes to stderr.
func NewStdDialog(assumeYes bool) *Dialog {
	return NewDialog(os.Stdin, os.Stderr, assumeYes, xterm.IsTerminal(int(os.Stdin.Fd())))
}

// Confirm returns true only for an explicit yes.
func (d *Dialog) Confirm(message string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.assumeYes {
		fmt.Fprintf(d.out, "%s [s/N] s\n", message)
		return true
	}
	if !d.interactive {
		fmt.Fprintf(d.out, "%s [s/N] n (use --sim para confirmar)\n", message)
		return false
	}

	fmt.Fprintf(d.out, "%s [s/N] ", message)
	line, err := d.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	default:
		return false
	}
}

// Alert prints message on its own line.
func (d *Dialog) Alert(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintln(d.out, message)
}
