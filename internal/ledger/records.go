// Package ledger holds the typed ledgers built on a storage.RecordStore:
// credentials, profiles, expenses, monthly budgets and savings goals.
//
// Every mutation is a full read-modify-write of its record set. Callers must
// not interleave writes from elsewhere; the ledgers do no locking.
package ledger

import "strings"

// Record set names.
const (
	SetCredentials = "credentials"
	SetProfile     = "profile"
	SetExpenses    = "expenses"
	SetBudgets     = "budgets"
	SetSavings     = "savings"
)

var (
	CredentialsHeader = []string{"username", "password_hash"}
	ProfileHeader     = []string{"first_name", "last_name", "age", "email", "username"}
	ExpensesHeader    = []string{"date", "amount", "category", "description", "payment_mode"}
	BudgetsHeader     = []string{"username", "month", "budget_amount", "alerted_50", "alerted_80", "alerted_exceeded"}
	SavingsHeader     = []string{"username", "goal_id", "goal_name", "target_amount", "current_amount", "created_on"}
)

// Headers maps every record set to its header, for bootstrapping a store.
func Headers() map[string][]string {
	return map[string][]string{
		SetCredentials: CredentialsHeader,
		SetProfile:     ProfileHeader,
		SetExpenses:    ExpensesHeader,
		SetBudgets:     BudgetsHeader,
		SetSavings:     SavingsHeader,
	}
}

func formatFlag(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// parseFlag reads an alert flag; any casing of "yes" counts as set.
func parseFlag(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "yes")
}

// field returns row[i], or "" when the row is short.
func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
