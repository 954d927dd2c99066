package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"pfm/internal/core"
	"pfm/internal/log"
	"pfm/internal/storage"
)

var errShortRow = errors.New("row has fewer than 5 fields")

// ExpenseRow is one stored expense at its 1-based listing position.
type ExpenseRow struct {
	Index   int
	Fields  []string
	Expense core.Expense
	// Err is set when the row could not be decoded. Such rows keep their
	// position so indices stay aligned with the file.
	Err error
}

// Listing is a snapshot of the whole expense set. Edits and deletes address
// rows by their position in a listing.
type Listing struct {
	Rows []ExpenseRow
}

func (l Listing) Len() int {
	return len(l.Rows)
}

// ExpenseUpdate describes an edit. Empty strings and a nil Amount keep the
// current value. The date is never changed.
type ExpenseUpdate struct {
	Amount      *decimal.Decimal
	Category    string
	Description string
	PaymentMode string
}

// Expenses is the append-mostly list of dated expense entries.
type Expenses struct {
	store  storage.RecordStore
	logger *log.Logger
}

func NewExpenses(store storage.RecordStore, logger *log.Logger) *Expenses {
	return &Expenses{store: store, logger: log.OrDiscard(logger, log.ComponentExpense)}
}

func encodeExpense(e core.Expense) []string {
	return []string{
		e.Date.String(),
		core.FormatAmount(e.Amount),
		e.Category,
		e.Description,
		e.PaymentMode,
	}
}

func decodeExpense(r []string) (core.Expense, error) {
	if len(r) < len(ExpensesHeader) {
		return core.Expense{}, errShortRow
	}
	date, err := core.ParseDate(r[0])
	if err != nil {
		return core.Expense{}, err
	}
	amount, err := core.ParseAmount(r[1])
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		Date:        date,
		Amount:      amount,
		Category:    r[2],
		Description: r[3],
		PaymentMode: r[4],
	}, nil
}

// Append adds one entry to the end of the set. Sign and category are not
// checked.
func (x *Expenses) Append(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	rows, err := x.store.ReadAll(ctx, SetExpenses)
	if err != nil {
		return err
	}
	rows = append(rows, encodeExpense(e))
	if err := x.store.WriteAll(ctx, SetExpenses, ExpensesHeader, rows); err != nil {
		return err
	}
	x.logger.InfoContext(ctx, "Expense appended",
		log.FieldIndex, len(rows), log.FieldAmount, e.Amount.String(), "category", e.Category)
	return nil
}

// List snapshots every row of the set.
func (x *Expenses) List(ctx context.Context) (Listing, error) {
	rows, err := x.store.ReadAll(ctx, SetExpenses)
	if err != nil {
		return Listing{}, err
	}
	l := Listing{Rows: make([]ExpenseRow, len(rows))}
	for i, r := range rows {
		e, err := decodeExpense(r)
		l.Rows[i] = ExpenseRow{Index: i + 1, Fields: r, Expense: e, Err: err}
	}
	return l, nil
}

// MonthTotal sums amounts of entries whose date starts with month (YYYY-MM).
// Rows with an unparseable amount are skipped.
//
// Expense rows carry no owner, so username does not narrow the sum; it is
// accepted so callers address totals the same way they address budgets.
func (x *Expenses) MonthTotal(ctx context.Context, username, month string) (decimal.Decimal, error) {
	rows, err := x.store.ReadAll(ctx, SetExpenses)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	skipped := 0
	for _, r := range rows {
		if len(r) < 2 || !strings.HasPrefix(r[0], month) {
			continue
		}
		amount, err := core.ParseAmount(r[1])
		if err != nil {
			skipped++
			continue
		}
		total = total.Add(amount)
	}
	if skipped > 0 {
		x.logger.WarnContext(ctx, "Skipped malformed expense rows",
			log.FieldUsername, username, log.FieldMonth, month, "skipped", skipped)
	}
	return total, nil
}

// Edit rewrites the row at index (1-based) in listing.
func (x *Expenses) Edit(ctx context.Context, listing Listing, index int, upd ExpenseUpdate) error {
	return x.mutate(ctx, listing, index, log.OpUpdate, func(rows [][]string, i int) [][]string {
		row := make([]string, len(ExpensesHeader))
		copy(row, rows[i])
		if upd.Amount != nil {
			row[1] = core.FormatAmount(*upd.Amount)
		}
		if upd.Category != "" {
			row[2] = upd.Category
		}
		if upd.Description != "" {
			row[3] = upd.Description
		}
		if upd.PaymentMode != "" {
			row[4] = upd.PaymentMode
		}
		rows[i] = row
		return rows
	})
}

// Delete removes the row at index (1-based) in listing.
func (x *Expenses) Delete(ctx context.Context, listing Listing, index int) error {
	return x.mutate(ctx, listing, index, log.OpDelete, func(rows [][]string, i int) [][]string {
		return append(rows[:i], rows[i+1:]...)
	})
}

// mutate re-reads the set and applies fn only if it still matches listing
// row for row.
func (x *Expenses) mutate(ctx context.Context, listing Listing, index int, op string, fn func([][]string, int) [][]string) error {
	if index < 1 || index > listing.Len() {
		return fmt.Errorf("expense #%d: %w", index, core.ErrNotFound)
	}
	rows, err := x.store.ReadAll(ctx, SetExpenses)
	if err != nil {
		return err
	}
	if !listing.matches(rows) {
		return fmt.Errorf("expense #%d: %w", index, core.ErrStaleListing)
	}
	rows = fn(rows, index-1)
	if err := x.store.WriteAll(ctx, SetExpenses, ExpensesHeader, rows); err != nil {
		return err
	}
	x.logger.InfoContext(ctx, "Expense modified", log.FieldOperation, op, log.FieldIndex, index)
	return nil
}

func (l Listing) matches(rows [][]string) bool {
	if len(rows) != len(l.Rows) {
		return false
	}
	for i, r := range rows {
		a := l.Rows[i].Fields
		if len(a) != len(r) {
			return false
		}
		for j := range r {
			if a[j] != r[j] {
				return false
			}
		}
	}
	return true
}
