package listing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// DefaultCurrency prefixes formatted prices.
const DefaultCurrency = "KES"

var errInvalidMoney = errors.New("invalid money amount")

// Money is a non-negative or negative amount held as an integer number of
// minor units (cents). The zero value is an unset amount: it is not Valid and
// never satisfies a price filter.
type Money struct {
	minor int64
	valid bool
}

// NewMoney returns an amount of whole currency units.
func NewMoney(units int64) Money {
	return Money{minor: units * 100, valid: true}
}

// MoneyFromMinor returns an amount expressed in minor units.
func MoneyFromMinor(minor int64) Money {
	return Money{minor: minor, valid: true}
}

// ParseMoney parses user or API input such as "75000", "75,000.50" or
// "KES 1,250,000". Letters before the number, thousands separators and spaces
// are ignored; at most two decimals are kept.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsSpace(r)
	})
	s = strings.NewReplacer(",", "", " ", "", "_", "").Replace(s)
	if s == "" {
		return Money{}, errInvalidMoney
	}

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" || len(intPart) > 15 || !allDigits(intPart) || !allDigits(fracPart) {
		return Money{}, errInvalidMoney
	}
	if len(fracPart) > 2 {
		fracPart = fracPart[:2]
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, errInvalidMoney
	}
	cents, _ := strconv.ParseInt(fracPart, 10, 64)
	minor := units*100 + cents
	if neg {
		minor = -minor
	}
	return Money{minor: minor, valid: true}, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Valid reports whether the amount holds a parsed value.
func (m Money) Valid() bool { return m.valid }

// Minor returns the amount in minor units.
func (m Money) Minor() int64 { return m.minor }

// Units returns the whole-unit part of the amount, truncated.
func (m Money) Units() int64 { return m.minor / 100 }

// Cmp compares two amounts: -1, 0 or +1.
func (m Money) Cmp(o Money) int {
	switch {
	case m.minor < o.minor:
		return -1
	case m.minor > o.minor:
		return 1
	}
	return 0
}

// IsPositive reports whether the amount is valid and greater than zero.
func (m Money) IsPositive() bool { return m.valid && m.minor > 0 }

// String renders the canonical decimal form ("75000.00"). Invalid amounts
// render as an empty string.
func (m Money) String() string {
	if !m.valid {
		return ""
	}
	sign := ""
	v := m.minor
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Format renders the amount for display, e.g. "KES 1,250,000". Cents are
// only shown when non-zero.
func (m Money) Format(currency string) string {
	if !m.valid {
		return ""
	}
	sign := ""
	v := m.minor
	if v < 0 {
		sign = "-"
		v = -v
	}
	out := sign + formatThousand(v/100)
	if cents := v % 100; cents != 0 {
		out += fmt.Sprintf(".%02d", cents)
	}
	if currency == "" {
		return out
	}
	return currency + " " + out
}

func formatThousand(n int64) string {
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}

// MarshalJSON writes the amount as a JSON number with two decimals, or null
// when unset.
func (m Money) MarshalJSON() ([]byte, error) {
	if !m.valid {
		return []byte("null"), nil
	}
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts numbers and formatted strings. Malformed input leaves
// the amount unset instead of failing the surrounding document.
func (m *Money) UnmarshalJSON(data []byte) error {
	*m = Money{}
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = s
	}
	if parsed, err := ParseMoney(raw); err == nil {
		*m = parsed
	}
	return nil
}

// Scan implements sql.Scanner for DECIMAL columns.
func (m *Money) Scan(src any) error {
	*m = Money{}
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return m.scanString(string(v))
	case string:
		return m.scanString(v)
	case int64:
		*m = NewMoney(v)
		return nil
	case float64:
		*m = MoneyFromMinor(int64(v*100 + 0.5))
		return nil
	}
	return fmt.Errorf("money: cannot scan %T", src)
}

func (m *Money) scanString(s string) error {
	parsed, err := ParseMoney(s)
	if err != nil {
		return fmt.Errorf("money: %w", err)
	}
	*m = parsed
	return nil
}

// Value implements driver.Valuer; unset amounts are stored as NULL.
func (m Money) Value() (driver.Value, error) {
	if !m.valid {
		return nil, nil
	}
	return m.String(), nil
}
