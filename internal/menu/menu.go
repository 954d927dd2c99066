// Package menu is the interactive text front end. It reads one answer per
// line and never touches record sets directly; every change goes through the
// services and ledgers it is built with.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"pfm/internal/core"
	"pfm/internal/ledger"
	"pfm/internal/log"
	"pfm/internal/services"
)

// Deps are the collaborators the menu drives.
type Deps struct {
	Auth     *services.AuthService
	Spending *services.ExpenseService
	Expenses *ledger.Expenses
	Budgets  *ledger.Budgets
	Savings  *ledger.Savings
}

// PasswordFunc reads a secret after showing prompt.
type PasswordFunc func(prompt string) (string, error)

type Option func(*Menu)

// WithPasswordReader replaces the default echoing password prompt.
func WithPasswordReader(fn PasswordFunc) Option {
	return func(m *Menu) { m.readPassword = fn }
}

// WithCurrency sets the symbol shown before amounts.
func WithCurrency(symbol string) Option {
	return func(m *Menu) { m.currency = symbol }
}

// WithExportDir sets where export files are written.
func WithExportDir(dir string) Option {
	return func(m *Menu) { m.exportDir = dir }
}

// WithClock overrides how the menu learns today's date.
func WithClock(today func() core.Date) Option {
	return func(m *Menu) { m.today = today }
}

func WithLogger(logger *log.Logger) Option {
	return func(m *Menu) { m.logger = logger }
}

type Menu struct {
	deps         Deps
	in           *bufio.Reader
	out          io.Writer
	styles       styles
	readPassword PasswordFunc
	currency     string
	exportDir    string
	today        func() core.Date
	logger       *log.Logger
}

func New(deps Deps, in io.Reader, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		deps:      deps,
		in:        bufio.NewReader(in),
		out:       out,
		styles:    newStyles(out),
		currency:  "₹",
		exportDir: ".",
		today:     core.Today,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = log.OrDiscard(m.logger, log.ComponentMenu)
	if m.readPassword == nil {
		m.readPassword = m.prompt
	}
	return m
}

// Run shows the top-level menu until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	m.println("Welcome to Personal Finance Manager")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.println("\n1. Login")
		m.println("2. Register")
		m.println("3. Exit")

		choice, err := m.prompt("Choose: ")
		if err != nil {
			return endOfInput(err)
		}

		switch choice {
		case "1":
			err = m.login(ctx)
		case "2":
			err = m.register(ctx)
		case "3":
			m.println("Goodbye!")
			return nil
		default:
			m.println("Invalid choice.")
		}
		if err = m.report(ctx, err); err != nil {
			return endOfInput(err)
		}
	}
}

func (m *Menu) financeMenu(ctx context.Context, username string) error {
	for {
		m.println("\n===== FINANCE MENU =====")
		m.println("1. Add a new expense")
		m.println("2. View expenses")
		m.println("3. Edit/Delete an expense")
		m.println("4. View monthly summary")
		m.println("5. Set or update monthly budget")
		m.println("6. Savings goals")
		m.println("7. Export expenses")
		m.println("8. Change Password")
		m.println("9. Logout")

		choice, err := m.prompt("Enter choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = m.addExpense(ctx, username)
		case "2":
			err = m.viewExpenses(ctx)
		case "3":
			err = m.editDeleteExpense(ctx)
		case "4":
			err = m.monthlySummary(ctx, username)
		case "5":
			err = m.setBudget(ctx, username)
		case "6":
			err = m.savingsMenu(ctx, username)
		case "7":
			err = m.exportExpenses(ctx, username)
		case "8":
			err = m.changePassword(ctx, username)
		case "9":
			m.println("Logged out.\n")
			return nil
		default:
			m.println("Invalid choice.\n")
		}
		if err = m.report(ctx, err); err != nil {
			return err
		}
	}
}

// report shows a failed action and lets the menu continue. Only input
// errors end the session.
func (m *Menu) report(ctx context.Context, err error) error {
	if err == nil || isInputErr(err) {
		return err
	}
	m.logger.ErrorContext(ctx, "Menu action failed", log.FieldError, err)
	m.fail("Error: " + err.Error())
	return nil
}

type inputError struct{ err error }

func (e *inputError) Error() string { return "read input: " + e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

func isInputErr(err error) bool {
	var ie *inputError
	return errors.As(err, &ie)
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// prompt shows label and returns the next trimmed line.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", &inputError{err: err}
	}
	return strings.TrimSpace(line), nil
}

// promptValid asks until validate reports no problems.
func (m *Menu) promptValid(label string, read PasswordFunc, validate func(string) []string) (string, error) {
	for {
		v, err := read(label)
		if err != nil {
			return "", err
		}
		errs := validate(v)
		if len(errs) == 0 {
			return v, nil
		}
		for _, e := range errs {
			m.fail(e)
		}
		m.println("")
	}
}

// promptAmount asks until the answer parses. When nonPositiveMsg is set, zero and
// negative amounts are rejected with nonPositiveMsg.
func (m *Menu) promptAmount(label, invalidMsg, nonPositiveMsg string) (decimal.Decimal, error) {
	for {
		s, err := m.prompt(label)
		if err != nil {
			return decimal.Zero, err
		}
		d, err := core.ParseAmount(s)
		if err != nil {
			m.fail(invalidMsg)
			continue
		}
		if nonPositiveMsg != "" && !d.IsPositive() {
			m.fail(nonPositiveMsg)
			continue
		}
		return d, nil
	}
}

func (m *Menu) money(d decimal.Decimal) string {
	return core.DisplayAmount(m.currency, d)
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) fail(s string) { m.styled(m.styles.err, s) }

func (m *Menu) warn(s string) { m.styled(m.styles.alert, s) }

func (m *Menu) ok(s string) { m.styled(m.styles.ok, s) }

// styled renders text without its trailing newlines, which are written
// unstyled after it.
func (m *Menu) styled(style lipgloss.Style, text string) {
	body := strings.TrimRight(text, "\n")
	fmt.Fprint(m.out, style.Render(body), strings.Repeat("\n", 1+len(text)-len(body)))
}
