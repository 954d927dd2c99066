package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

type (
	// Date is a calendar day without time of day.
	Date struct {
		time.Time
	}

	Expense struct {
		Date        Date
		Amount      decimal.Decimal
		Category    string
		Description string
		PaymentMode string
	}

	// Budget is the per-(username, month) spending limit and its alert flags.
	Budget struct {
		Username        string
		Month           string // YYYY-MM
		Limit           decimal.Decimal
		Alerted50       bool
		Alerted80       bool
		AlertedExceeded bool
	}

	Goal struct {
		Username  string
		ID        int
		Name      string
		Target    decimal.Decimal
		Current   decimal.Decimal
		CreatedOn Date
	}

	Credential struct {
		Username     string
		PasswordHash string
	}

	Profile struct {
		FirstName string
		LastName  string
		Age       int
		Email     string
		Username  string
	}
)

var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrAlreadyExists = errors.New("already exists")
	// ErrStaleListing is returned when the record set changed between a
	// listing and a positional edit or delete.
	ErrStaleListing = errors.New("listing is stale")

	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrInvalidDate   = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrInvalidMonth  = fmt.Errorf("%w: invalid month", ErrValidation)
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current local day.
func Today() Date {
	y, m, d := time.Now().Date()
	return NewDate(y, int(m), d)
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MonthKey returns the YYYY-MM key of the month containing d.
func (d Date) MonthKey() string {
	return d.Format(MonthLayout)
}

// CurrentMonth returns today's YYYY-MM key.
func CurrentMonth() string {
	return Today().MonthKey()
}

// ValidateMonth checks that s is a YYYY-MM key.
func ValidateMonth(s string) error {
	if _, err := time.Parse(MonthLayout, s); err != nil || len(s) != len(MonthLayout) {
		return ErrInvalidMonth
	}
	return nil
}

func (e Expense) Validate() error {
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Remaining is what is left to reach the goal target; it can go negative.
func (g Goal) Remaining() decimal.Decimal {
	return g.Target.Sub(g.Current)
}
