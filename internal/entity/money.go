package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Cents is a monetary amount in integer minor units. All currency
// arithmetic in the system happens on this type; float64 is never used
// for money.
type Cents int64

// ParseCents parses a decimal string such as "10", "10.5" or "10.50"
// into minor units without going through floating point.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	switch len(frac) {
	case 0:
		frac = "00"
	case 1:
		frac += "0"
	case 2:
	default:
		return 0, fmt.Errorf("amount %q has more than 2 decimal places", s)
	}

	// Only bare digits past this point; ParseInt alone would let an
	// embedded sign ("1.-5") through.
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	c := Cents(w*100 + f)
	if neg {
		c = -c
	}
	return c, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Mul returns the line total for qty units at this unit price.
func (c Cents) Mul(qty int) Cents {
	return c * Cents(qty)
}

// String formats the amount with two decimal places, e.g. "25.00".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON emits the amount as a decimal string so clients never see
// binary floating point representations of money.
func (c Cents) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts either a decimal string ("10.50") or a bare
// JSON number.
func (c *Cents) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := ParseCents(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
