package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pfm/internal/core"
)

func TestBudgetsUpsertRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := NewBudgets(newTestStore(t), nil)

	_, ok, err := b.Get(ctx, "anita", "2024-01")
	require.NoError(t, err)
	assert.False(t, ok)

	want := core.Budget{
		Username:  "anita",
		Month:     "2024-01",
		Limit:     dec("1000.50"),
		Alerted50: true,
		Alerted80: false,
	}
	require.NoError(t, b.Upsert(ctx, want))

	got, ok, err := b.Get(ctx, "anita", "2024-01")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Limit.Equal(want.Limit))
	assert.Equal(t, want.Alerted50, got.Alerted50)
	assert.Equal(t, want.Alerted80, got.Alerted80)
	assert.Equal(t, want.AlertedExceeded, got.AlertedExceeded)
}

func TestBudgetsUpsertInPlacePreservesOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	b := NewBudgets(store, nil)

	require.NoError(t, b.Upsert(ctx, core.Budget{Username: "anita", Month: "2024-01", Limit: dec("100")}))
	require.NoError(t, b.Upsert(ctx, core.Budget{Username: "ravi", Month: "2024-01", Limit: dec("200")}))
	require.NoError(t, b.Upsert(ctx, core.Budget{Username: "anita", Month: "2024-02", Limit: dec("300")}))
	require.NoError(t, b.Upsert(ctx, core.Budget{Username: "anita", Month: "2024-01", Limit: dec("150"), AlertedExceeded: true}))

	rows, err := store.ReadAll(ctx, SetBudgets)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"anita", "2024-01", "150", "no", "no", "yes"},
		{"ravi", "2024-01", "200", "no", "no", "no"},
		{"anita", "2024-02", "300", "no", "no", "no"},
	}, rows)
}

func TestBudgetsSetLimitResetsFlags(t *testing.T) {
	ctx := context.Background()
	b := NewBudgets(newTestStore(t), nil)

	require.NoError(t, b.Upsert(ctx, core.Budget{
		Username: "anita", Month: "2024-01", Limit: dec("100"),
		Alerted50: true, Alerted80: true, AlertedExceeded: true,
	}))
	_, err := b.SetLimit(ctx, "anita", "2024-01", dec("500"))
	require.NoError(t, err)

	got, ok, err := b.Get(ctx, "anita", "2024-01")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Limit.Equal(dec("500")))
	assert.False(t, got.Alerted50 || got.Alerted80 || got.AlertedExceeded)
}

func TestBudgetsRejectInvalid(t *testing.T) {
	ctx := context.Background()
	b := NewBudgets(newTestStore(t), nil)

	_, err := b.SetLimit(ctx, "anita", "2024-01", dec("0"))
	assert.ErrorIs(t, err, core.ErrValidation)
	_, err = b.SetLimit(ctx, "anita", "2024-01", dec("-10"))
	assert.ErrorIs(t, err, core.ErrValidation)
	_, err = b.SetLimit(ctx, "anita", "January", dec("10"))
	assert.ErrorIs(t, err, core.ErrValidation)
	_, err = b.SetLimit(ctx, "", "2024-01", dec("10"))
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestBudgetsMonthRolloverStartsFresh(t *testing.T) {
	ctx := context.Background()
	b := NewBudgets(newTestStore(t), nil)
	require.NoError(t, b.Upsert(ctx, core.Budget{
		Username: "anita", Month: "2024-01", Limit: dec("100"),
		Alerted50: true, Alerted80: true, AlertedExceeded: true,
	}))

	_, ok, err := b.Get(ctx, "anita", "2024-02")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBudgetsGetToleratesBadRows(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.WriteAll(ctx, SetBudgets, BudgetsHeader, [][]string{
		{"anita", "2024-01", "lots", "no", "no", "no"},
		{"ravi", "2024-01", "100"},
	}))
	b := NewBudgets(store, nil)

	_, ok, err := b.Get(ctx, "anita", "2024-01")
	require.NoError(t, err)
	assert.False(t, ok)

	got, ok, err := b.Get(ctx, "ravi", "2024-01")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, got.Alerted50 || got.Alerted80 || got.AlertedExceeded, "missing flags read as no")
}

func TestBudgetsFlagsIgnoreCase(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.WriteAll(ctx, SetBudgets, BudgetsHeader, [][]string{
		{"anita", "2024-01", "100", "Yes", " YES ", "yes"},
	}))
	b := NewBudgets(store, nil)

	got, ok, err := b.Get(ctx, "anita", "2024-01")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Alerted50)
	assert.True(t, got.Alerted80)
	assert.True(t, got.AlertedExceeded)

	_, fired := core.EvaluateAlerts(dec("150"), got)
	assert.Empty(t, fired)
}
