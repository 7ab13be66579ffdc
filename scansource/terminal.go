package scansource

import (
	"bufio"
	"os"

	"golang.org/x/term"

	"github.com/kbfw/corekbd/dispatch"
)

// Terminal is a live demo ScanSource driven by raw-mode stdin. Terminals
// report keystrokes, not key transitions, so each byte read is modeled
// as a single-tick press immediately followed by a release on the next
// Scan() call — enough to exercise the dispatcher's Basic/DualRole/Macro
// paths interactively without real matrix hardware.
type Terminal struct {
	fd       int
	oldState *term.State
	reader   *bufio.Reader
	colOf    map[byte]int
	colCount int

	prior, current dispatch.RowBitmap
	pendingRelease bool
}

// NewTerminal builds a Terminal source. colOf maps an input byte to a
// column index in row 0; bytes not present in colOf are ignored.
func NewTerminal(colOf map[byte]int, colCount int) *Terminal {
	return &Terminal{
		reader:   bufio.NewReader(os.Stdin),
		colOf:    colOf,
		colCount: colCount,
	}
}

// Setup puts the terminal into raw mode. Call Restore when done.
func (t *Terminal) Setup() error {
	t.fd = int(os.Stdin.Fd())
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return err
	}
	t.oldState = state
	return nil
}

// Restore returns the terminal to its original mode.
func (t *Terminal) Restore() error {
	if t.oldState == nil {
		return nil
	}
	return term.Restore(t.fd, t.oldState)
}

// Scan samples one keystroke. If the previous Scan observed a press, this
// call first synthesizes the matching release before reading the next
// byte, so every keystroke produces exactly one down-then-up transition
// pair across two Scan calls.
func (t *Terminal) Scan() bool {
	t.prior = t.current
	if t.pendingRelease {
		t.current = 0
		t.pendingRelease = false
		return t.prior != t.current
	}

	b, err := t.reader.ReadByte()
	if err != nil {
		t.current = 0
		return t.prior != t.current
	}
	col, ok := t.colOf[b]
	if !ok {
		t.current = 0
		return t.prior != t.current
	}
	t.current = dispatch.RowBitmap(1) << uint(col)
	t.pendingRelease = true
	return t.prior != t.current
}

func (t *Terminal) Current() []dispatch.RowBitmap { return []dispatch.RowBitmap{t.current} }
func (t *Terminal) Prior() []dispatch.RowBitmap   { return []dispatch.RowBitmap{t.prior} }
