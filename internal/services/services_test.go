package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"pfm/internal/ledger"
	"pfm/internal/storage"
)

type fixture struct {
	store    *storage.FileStore
	expenses *ledger.Expenses
	budgets  *ledger.Budgets
	auth     *AuthService
	svc      *ExpenseService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, storage.EnsureAll(context.Background(), store, ledger.Headers()))

	expenses := ledger.NewExpenses(store, nil)
	budgets := ledger.NewBudgets(store, nil)
	return fixture{
		store:    store,
		expenses: expenses,
		budgets:  budgets,
		auth:     NewAuthService(ledger.NewCredentials(store, nil), ledger.NewProfiles(store), nil),
		svc:      NewExpenseService(expenses, budgets, nil),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
