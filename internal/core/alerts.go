package core

import "github.com/shopspring/decimal"

// Threshold is a budget usage percentage that raises an alert once per month.
type Threshold int

const (
	Threshold50       Threshold = 50
	Threshold80       Threshold = 80
	ThresholdExceeded Threshold = 100
)

var thresholds = []Threshold{Threshold50, Threshold80, ThresholdExceeded}

func (t Threshold) Message() string {
	switch t {
	case Threshold50:
		return "You have crossed 50% of your monthly budget!"
	case Threshold80:
		return "You have crossed 80% of your monthly budget!"
	default:
		return "You have EXCEEDED your monthly budget!"
	}
}

var hundred = decimal.NewFromInt(100)

// UsagePercent returns spend as a percentage of the budget limit.
func (b Budget) UsagePercent(spend decimal.Decimal) decimal.Decimal {
	if !b.Limit.IsPositive() {
		return decimal.Zero
	}
	return spend.Div(b.Limit).Mul(hundred)
}

func (b Budget) alerted(t Threshold) bool {
	switch t {
	case Threshold50:
		return b.Alerted50
	case Threshold80:
		return b.Alerted80
	default:
		return b.AlertedExceeded
	}
}

func (b *Budget) markAlerted(t Threshold) {
	switch t {
	case Threshold50:
		b.Alerted50 = true
	case Threshold80:
		b.Alerted80 = true
	default:
		b.AlertedExceeded = true
	}
}

// EvaluateAlerts decides which thresholds newly fire for spend against b.
//
// Thresholds are checked in ascending order in one pass, so a single jump past
// the limit fires 50, 80 and 100 together. Flags already set never fire again.
// The returned budget carries the updated flags; b itself is not modified.
func EvaluateAlerts(spend decimal.Decimal, b Budget) (Budget, []Threshold) {
	if !b.Limit.IsPositive() {
		return b, nil
	}
	percent := b.UsagePercent(spend)

	var fired []Threshold
	for _, t := range thresholds {
		if percent.GreaterThanOrEqual(decimal.NewFromInt(int64(t))) && !b.alerted(t) {
			b.markAlerted(t)
			fired = append(fired, t)
		}
	}
	return b, fired
}
