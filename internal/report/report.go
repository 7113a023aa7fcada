// Package report produces the figures shown in report replies.
package report

import (
	"fmt"
	"strings"

	"tradeassist/internal/domain"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Generator produces the amount for a report
type Generator interface {
	Generate(userID string, kind domain.ReportKind) (Amount, error)
}

// Amount is a monetary value in a currency
type Amount struct {
	Value    decimal.Decimal
	Currency string
}

// NewAmount creates an amount from whole units
func NewAmount(units int64, currency string) Amount {
	return Amount{Value: decimal.NewFromInt(units), Currency: currency}
}

// String renders the value followed by the currency sign, e.g. "38 000 €"
func (a Amount) String() string {
	grapheme, fraction := a.Currency, 2
	if cur := money.GetCurrency(a.Currency); cur != nil {
		grapheme, fraction = cur.Grapheme, cur.Fraction
	}

	fixed := a.Value.Abs().StringFixed(int32(fraction))
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if a.Value.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(groupThousands(whole))
	if strings.Trim(frac, "0") != "" {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	b.WriteByte(' ')
	b.WriteString(grapheme)
	return b.String()
}

// groupThousands separates digit groups with spaces. Four-digit numbers stay ungrouped ("3421", "38 000").
func groupThousands(digits string) string {
	if len(digits) <= 4 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Static returns fixed placeholder figures until real marketplace data is available
type Static struct {
	currency string
	amounts  map[domain.ReportKind]decimal.Decimal
}

// NewStatic creates the placeholder generator for the given currency
func NewStatic(currency string) *Static {
	return &Static{
		currency: currency,
		amounts: map[domain.ReportKind]decimal.Decimal{
			domain.ReportDay:   decimal.NewFromInt(123),
			domain.ReportWeek:  decimal.NewFromInt(999),
			domain.ReportMonth: decimal.NewFromInt(3421),
			domain.ReportYear:  decimal.NewFromInt(38000),
		},
	}
}

// Generate ignores the user and returns the placeholder for the kind
func (s *Static) Generate(_ string, kind domain.ReportKind) (Amount, error) {
	value, ok := s.amounts[kind]
	if !ok {
		return Amount{}, fmt.Errorf("unknown report kind %q", kind)
	}
	return Amount{Value: value, Currency: s.currency}, nil
}

// ValidCurrency reports whether the code is a known ISO 4217 currency
func ValidCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}
