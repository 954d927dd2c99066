package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"pfm/internal/core"
	"pfm/internal/log"
	"pfm/internal/storage"
)

// Budgets holds one row per (username, month).
type Budgets struct {
	store  storage.RecordStore
	logger *log.Logger
}

func NewBudgets(store storage.RecordStore, logger *log.Logger) *Budgets {
	return &Budgets{store: store, logger: log.OrDiscard(logger, log.ComponentBudget)}
}

func encodeBudget(b core.Budget) []string {
	return []string{
		b.Username,
		b.Month,
		core.FormatAmount(b.Limit),
		formatFlag(b.Alerted50),
		formatFlag(b.Alerted80),
		formatFlag(b.AlertedExceeded),
	}
}

func isBudgetKey(r []string, username, month string) bool {
	return len(r) >= 2 && r[0] == username && r[1] == month
}

// Get returns the budget for (username, month). A row whose amount does not
// parse reads as absent.
func (b *Budgets) Get(ctx context.Context, username, month string) (core.Budget, bool, error) {
	rows, err := b.store.ReadAll(ctx, SetBudgets)
	if err != nil {
		return core.Budget{}, false, err
	}
	for _, r := range rows {
		if !isBudgetKey(r, username, month) {
			continue
		}
		limit, err := core.ParseAmount(field(r, 2))
		if err != nil {
			b.logger.WarnContext(ctx, "Unreadable budget row", log.FieldUsername, username, log.FieldMonth, month)
			return core.Budget{}, false, nil
		}
		return core.Budget{
			Username:        username,
			Month:           month,
			Limit:           limit,
			Alerted50:       parseFlag(field(r, 3)),
			Alerted80:       parseFlag(field(r, 4)),
			AlertedExceeded: parseFlag(field(r, 5)),
		}, true, nil
	}
	return core.Budget{}, false, nil
}

// Upsert overwrites the row for the budget's key in place, or appends it.
// Limit and flags are always written together in one rewrite of the set.
func (b *Budgets) Upsert(ctx context.Context, budget core.Budget) error {
	if strings.TrimSpace(budget.Username) == "" {
		return fmt.Errorf("%w: empty username", core.ErrValidation)
	}
	if err := core.ValidateMonth(budget.Month); err != nil {
		return err
	}
	if !budget.Limit.IsPositive() {
		return fmt.Errorf("%w: budget must be greater than zero", core.ErrValidation)
	}

	rows, err := b.store.ReadAll(ctx, SetBudgets)
	if err != nil {
		return err
	}
	row := encodeBudget(budget)
	found := false
	for i, r := range rows {
		if isBudgetKey(r, budget.Username, budget.Month) {
			rows[i] = row
			found = true
		}
	}
	if !found {
		rows = append(rows, row)
	}
	if err := b.store.WriteAll(ctx, SetBudgets, BudgetsHeader, rows); err != nil {
		return err
	}

	b.logger.InfoContext(ctx, "Budget upserted", log.NewFields().
		WithOperation(log.OpUpsert).
		WithBudgetKey(budget.Username, budget.Month).
		ToSlice()...)
	return nil
}

// SetLimit records a new monthly limit. All alert flags are reset to false,
// so thresholds already announced this month can fire again.
func (b *Budgets) SetLimit(ctx context.Context, username, month string, limit decimal.Decimal) (core.Budget, error) {
	budget := core.Budget{Username: username, Month: month, Limit: limit}
	if err := b.Upsert(ctx, budget); err != nil {
		return core.Budget{}, err
	}
	return budget, nil
}
