package core

import "github.com/shopspring/decimal"

// MonthSummary is the spend for one month against its optional budget.
type MonthSummary struct {
	Month     string
	Spent     decimal.Decimal
	Budget    *Budget
	Remaining decimal.Decimal // zero when Budget is nil
}
