package menu

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"pfm/internal/core"
	"pfm/internal/export"
	"pfm/internal/ledger"
	"pfm/internal/services"
)

const staleListingMsg = "Expenses changed since they were listed. Please try again.\n"

func (m *Menu) addExpense(ctx context.Context, username string) error {
	m.println("\n--- ADD NEW EXPENSE ---")

	amount, err := m.promptAmount("Enter amount: ", "Enter a valid number.", "")
	if err != nil {
		return err
	}
	e := core.Expense{Date: m.today(), Amount: amount}
	if e.Category, err = m.prompt("Enter category (Food/Travel/Shopping/Bills/Other): "); err != nil {
		return err
	}
	if e.Description, err = m.prompt("Enter description: "); err != nil {
		return err
	}
	if e.PaymentMode, err = m.prompt("Enter payment mode (Cash/UPI/Card): "); err != nil {
		return err
	}

	fired, err := m.deps.Spending.AddExpense(ctx, username, e)
	if errors.Is(err, services.ErrAlertsNotChecked) {
		m.ok("Expense added.\n")
		return err
	}
	if err != nil {
		return err
	}
	m.ok("Expense added.\n")
	for _, t := range fired {
		m.warn(t.Message())
	}
	return nil
}

func (m *Menu) viewExpenses(ctx context.Context) error {
	m.println("\n--- ALL EXPENSES ---")

	listing, err := m.deps.Expenses.List(ctx)
	if err != nil {
		return err
	}
	if listing.Len() == 0 {
		m.println("No expenses recorded yet.\n")
		return nil
	}

	m.println("")
	m.println(m.styles.header.Render("#   DATE         AMOUNT   CATEGORY     DESCRIPTION      MODE"))
	m.println(strings.Repeat("-", 64))
	for _, row := range listing.Rows {
		f := padded(row.Fields)
		m.printf("%d.  %-12s %-8s %-12s %-15s %s\n", row.Index, f[0], f[1], f[2], f[3], f[4])
	}
	m.println("")
	return nil
}

func padded(fields []string) []string {
	out := make([]string, len(ledger.ExpensesHeader))
	copy(out, fields)
	return out
}

func (m *Menu) editDeleteExpense(ctx context.Context) error {
	m.println("\n--- EDIT/DELETE EXPENSE ---")

	listing, err := m.deps.Expenses.List(ctx)
	if err != nil {
		return err
	}
	if listing.Len() == 0 {
		m.println("No expenses to modify.\n")
		return nil
	}
	for _, row := range listing.Rows {
		m.printf("%d. %s\n", row.Index, strings.Join(row.Fields, ", "))
	}

	s, err := m.prompt("Choose index: ")
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(s)
	if err != nil {
		m.fail("Invalid input.\n")
		return nil
	}
	if index < 1 || index > listing.Len() {
		m.fail("Invalid index.\n")
		return nil
	}

	m.println("1. Edit")
	m.println("2. Delete")
	action, err := m.prompt("Choose: ")
	if err != nil {
		return err
	}

	switch action {
	case "1":
		upd, err := m.promptUpdate(padded(listing.Rows[index-1].Fields))
		if err != nil {
			return err
		}
		err = m.deps.Expenses.Edit(ctx, listing, index, upd)
		if errors.Is(err, core.ErrStaleListing) {
			m.fail(staleListingMsg)
			return nil
		}
		if err != nil {
			return err
		}
		m.ok("Expense updated.\n")
	case "2":
		err := m.deps.Expenses.Delete(ctx, listing, index)
		if errors.Is(err, core.ErrStaleListing) {
			m.fail(staleListingMsg)
			return nil
		}
		if err != nil {
			return err
		}
		m.ok("Expense deleted.\n")
	default:
		m.println("Invalid choice.\n")
	}
	return nil
}

// promptUpdate shows each current value; an empty answer keeps it.
func (m *Menu) promptUpdate(current []string) (ledger.ExpenseUpdate, error) {
	var upd ledger.ExpenseUpdate
	for {
		s, err := m.prompt("Amount (" + current[1] + "): ")
		if err != nil {
			return upd, err
		}
		if s == "" {
			break
		}
		d, err := core.ParseAmount(s)
		if err != nil {
			m.fail("Enter a valid number.")
			continue
		}
		upd.Amount = &d
		break
	}

	var err error
	if upd.Category, err = m.prompt("Category (" + current[2] + "): "); err != nil {
		return upd, err
	}
	if upd.Description, err = m.prompt("Description (" + current[3] + "): "); err != nil {
		return upd, err
	}
	if upd.PaymentMode, err = m.prompt("Payment (" + current[4] + "): "); err != nil {
		return upd, err
	}
	return upd, nil
}

func (m *Menu) monthlySummary(ctx context.Context, username string) error {
	m.println("\n--- MONTHLY SUMMARY ---")

	month := m.today().MonthKey()
	summary, err := m.deps.Spending.MonthlySummary(ctx, username, month)
	if err != nil {
		return err
	}

	m.printf("Total spent in %s: %s\n", month, m.money(summary.Spent))
	if summary.Budget == nil {
		m.println("No budget set for this month.\n")
		return nil
	}
	m.printf("Budget: %s\n", m.money(summary.Budget.Limit))
	remaining := "Remaining: " + m.money(summary.Remaining)
	if summary.Remaining.IsNegative() {
		m.fail(remaining + "\n")
	} else {
		m.println(remaining + "\n")
	}
	return nil
}

func (m *Menu) setBudget(ctx context.Context, username string) error {
	m.println("\n--- SET / UPDATE MONTHLY BUDGET ---\n")

	month := m.today().MonthKey()
	existing, ok, err := m.deps.Budgets.Get(ctx, username, month)
	if err != nil {
		return err
	}
	if ok {
		m.printf("Current budget for %s: %s\n", month, m.money(existing.Limit))
	} else {
		m.printf("No budget set for %s yet.\n", month)
	}

	limit, err := m.promptAmount("Enter monthly budget amount: ", "Enter a valid number.", "Budget must be greater than zero.")
	if err != nil {
		return err
	}
	if _, err := m.deps.Budgets.SetLimit(ctx, username, month, limit); err != nil {
		return err
	}
	m.ok("Budget for " + month + " set to " + m.money(limit) + "\n")
	return nil
}

func (m *Menu) exportExpenses(ctx context.Context, username string) error {
	m.println("\n--- EXPORT EXPENSES ---\n")

	s, err := m.prompt("Format (csv/xlsx) [csv]: ")
	if err != nil {
		return err
	}
	if s == "" {
		s = string(export.FormatCSV)
	}
	format, err := export.ParseFormat(s)
	if err != nil {
		m.fail("Invalid choice.\n")
		return nil
	}

	listing, err := m.deps.Expenses.List(ctx)
	if err != nil {
		return err
	}
	if listing.Len() == 0 {
		m.println("No expenses found.\n")
		return nil
	}

	path, err := export.ToFile(m.exportDir, username, format, listing)
	if err != nil {
		return err
	}
	m.ok("Expenses successfully exported to " + path + "\n")
	return nil
}

