package menu

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// TerminalPassword reads passwords from in without echo when in is a
// terminal. It returns nil otherwise, leaving the menu's line reader in
// charge.
func TerminalPassword(in *os.File, out io.Writer) PasswordFunc {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", &inputError{err: err}
		}
		return string(b), nil
	}
}
