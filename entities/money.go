package entities

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Money is a fixed-point amount in a single currency. Amount is stored in
// minor units (cents), so repeated conversions never accumulate float drift.
type Money struct {
	Amount   int64
	Currency string
}

func NewMoney(minorUnits int64, currency string) Money {
	return Money{Amount: minorUnits, Currency: strings.ToUpper(currency)}
}

// ParseMoney parses a decimal string like "123.45" into minor units.
// Negative amounts are rejected, prices are never negative.
func ParseMoney(amount, currency string) (Money, error) {
	minor, err := parseMinorUnits(amount)
	if err != nil {
		return Money{}, fmt.Errorf("could not parse money amount %q: %w", amount, err)
	}
	if minor < 0 {
		return Money{}, fmt.Errorf("money amount %q is negative", amount)
	}
	if currency == "" {
		return Money{}, fmt.Errorf("money currency is empty")
	}

	return NewMoney(minor, currency), nil
}

// RateTable maps a currency code to its value in micro-units of the base
// currency (1_000_000 = 1 base unit). It is injected at construction time,
// never read from a package global.
type RateTable map[string]int64

type UnknownCurrencyError struct {
	Currency string
}

func (e UnknownCurrencyError) Error() string {
	return fmt.Sprintf("unknown currency: %s", e.Currency)
}

func (e UnknownCurrencyError) IsPermanent() bool {
	return true
}

type CurrencyMismatchError struct {
	Left  string
	Right string
}

func (e CurrencyMismatchError) Error() string {
	return fmt.Sprintf("currency mismatch: %s vs %s", e.Left, e.Right)
}

func (e CurrencyMismatchError) IsPermanent() bool {
	return true
}

// Convert returns m denominated in target. m is not mutated.
func (m Money) Convert(target string, rates RateTable) (Money, error) {
	target = strings.ToUpper(target)
	if m.Currency == target {
		return m, nil
	}

	from, ok := rates[m.Currency]
	if !ok {
		return Money{}, UnknownCurrencyError{Currency: m.Currency}
	}
	to, ok := rates[target]
	if !ok {
		return Money{}, UnknownCurrencyError{Currency: target}
	}

	return Money{Amount: mulDivRound(m.Amount, from, to), Currency: target}, nil
}

// Add returns m+b. Differing currencies fail, there is no implicit
// conversion - use AddConverted when a rate table is available.
func (m Money) Add(b Money) (Money, error) {
	if m.IsZero() {
		return b, nil
	}
	if b.IsZero() {
		return m, nil
	}
	if m.Currency != b.Currency {
		return Money{}, CurrencyMismatchError{Left: m.Currency, Right: b.Currency}
	}

	return Money{Amount: m.Amount + b.Amount, Currency: m.Currency}, nil
}

// AddConverted returns m+b in m's currency, converting b through rates.
func (m Money) AddConverted(b Money, rates RateTable) (Money, error) {
	if m.IsZero() {
		return b, nil
	}
	if b.IsZero() {
		return m, nil
	}

	converted, err := b.Convert(m.Currency, rates)
	if err != nil {
		return Money{}, err
	}

	return Money{Amount: m.Amount + converted.Amount, Currency: m.Currency}, nil
}

// Mul returns m multiplied by n (e.g. price per night times nights).
func (m Money) Mul(n int) Money {
	return Money{Amount: m.Amount * int64(n), Currency: m.Currency}
}

// Cmp compares two amounts in the same currency.
func (m Money) Cmp(b Money) (int, error) {
	if m.Currency != b.Currency {
		return 0, CurrencyMismatchError{Left: m.Currency, Right: b.Currency}
	}

	switch {
	case m.Amount < b.Amount:
		return -1, nil
	case m.Amount > b.Amount:
		return 1, nil
	default:
		return 0, nil
	}
}

func (m Money) IsZero() bool {
	return m.Amount == 0 && m.Currency == ""
}

func (m Money) String() string {
	return formatMinorUnits(m.Amount) + " " + m.Currency
}

type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{
		Amount:   formatMinorUnits(m.Amount),
		Currency: m.Currency,
	})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	minor, err := parseMinorUnits(raw.Amount)
	if err != nil {
		return fmt.Errorf("could not parse money amount %q: %w", raw.Amount, err)
	}

	m.Amount = minor
	m.Currency = strings.ToUpper(raw.Currency)
	return nil
}

// mulDivRound computes a*b/c with half-up rounding, keeping intermediate
// math in int64. Realistic prices and micro-rates stay far below overflow.
func mulDivRound(a, b, c int64) int64 {
	product := a * b
	quotient := product / c
	remainder := product % c
	if remainder*2 >= c {
		quotient++
	}
	return quotient
}

func parseMinorUnits(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	whole, frac, _ := strings.Cut(s, ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, err
	}

	if frac == "" {
		return units * 100, nil
	}
	if len(frac) > 2 {
		frac = frac[:2]
	}
	if len(frac) == 1 {
		frac += "0"
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, err
	}

	if units < 0 || strings.HasPrefix(whole, "-") {
		return units*100 - cents, nil
	}
	return units*100 + cents, nil
}

func formatMinorUnits(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
