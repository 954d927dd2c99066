package services

import (
	"context"
	"errors"
	"fmt"

	"pfm/internal/core"
	"pfm/internal/ledger"
	"pfm/internal/log"
)

// ErrAlertsNotChecked is returned by AddExpense when the expense was saved
// but its month's budget alerts could not be evaluated.
var ErrAlertsNotChecked = errors.New("expense saved but budget alerts were not checked")

// ExpenseService ties expense entry to the monthly budget alerts.
type ExpenseService struct {
	expenses *ledger.Expenses
	budgets  *ledger.Budgets
	logger   *log.Logger
}

func NewExpenseService(expenses *ledger.Expenses, budgets *ledger.Budgets, logger *log.Logger) *ExpenseService {
	return &ExpenseService{
		expenses: expenses,
		budgets:  budgets,
		logger:   log.OrDiscard(logger, log.ComponentExpense),
	}
}

// AddExpense appends e and evaluates the budget alerts for its month.
// The returned thresholds are the ones that fired for the first time. An
// error matching ErrAlertsNotChecked means e is stored regardless.
func (s *ExpenseService) AddExpense(ctx context.Context, username string, e core.Expense) ([]core.Threshold, error) {
	if err := s.expenses.Append(ctx, e); err != nil {
		return nil, fmt.Errorf("save expense: %w", err)
	}

	fired, err := s.CheckAlerts(ctx, username, e.Date.MonthKey())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAlertsNotChecked, err)
	}
	return fired, nil
}

// CheckAlerts recomputes the month's spend, fires any newly crossed
// thresholds and persists the flag transitions. Without a budget for the
// month nothing happens.
func (s *ExpenseService) CheckAlerts(ctx context.Context, username, month string) ([]core.Threshold, error) {
	budget, ok, err := s.budgets.Get(ctx, username, month)
	if err != nil || !ok {
		return nil, err
	}

	spent, err := s.expenses.MonthTotal(ctx, username, month)
	if err != nil {
		return nil, err
	}

	updated, fired := core.EvaluateAlerts(spent, budget)
	if len(fired) == 0 {
		return nil, nil
	}
	if err := s.budgets.Upsert(ctx, updated); err != nil {
		return nil, err
	}

	for _, t := range fired {
		s.logger.InfoContext(ctx, "Budget threshold crossed",
			log.FieldUsername, username, log.FieldMonth, month, log.FieldThreshold, int(t))
	}
	return fired, nil
}

// MonthlySummary reports what was spent in month against its budget.
func (s *ExpenseService) MonthlySummary(ctx context.Context, username, month string) (core.MonthSummary, error) {
	spent, err := s.expenses.MonthTotal(ctx, username, month)
	if err != nil {
		return core.MonthSummary{}, err
	}
	summary := core.MonthSummary{Month: month, Spent: spent}

	budget, ok, err := s.budgets.Get(ctx, username, month)
	if err != nil {
		return core.MonthSummary{}, err
	}
	if ok {
		summary.Budget = &budget
		summary.Remaining = budget.Limit.Sub(spent)
	}
	return summary, nil
}
