package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// minorExp is the number of decimal places held in one major unit.
const minorExp = 2

// MaxAmount bounds the magnitude of any single amount the engine accepts.
// Sums of bounded amounts are still checked for int64 overflow.
const MaxAmount Amount = 1_000_000_000_000_000

// Amount is a monetary value in minor currency units (cents).
// All ledger arithmetic happens on Amount; decimal values only appear
// when parsing user input or rendering output.
type Amount int64

// String renders the amount as a fixed two-place decimal, e.g. "-3.34".
func (a Amount) String() string {
	return decimal.New(int64(a), -minorExp).StringFixed(minorExp)
}

// ParseAmount converts a decimal string such as "12.5" or "12.50" into minor
// units. Values with more than two decimal places are rejected rather than
// rounded.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	minor := d.Shift(minorExp)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("invalid amount %q: at most %d decimal places allowed", s, minorExp)
	}
	if minor.Abs().GreaterThan(decimal.NewFromInt(int64(MaxAmount))) {
		return 0, fmt.Errorf("invalid amount %q: magnitude exceeds %s", s, MaxAmount)
	}
	return Amount(minor.IntPart()), nil
}

// add returns a+b and reports whether the sum fit in an int64.
func add(a, b Amount) (Amount, bool) {
	sum := a + b
	if (a >= 0) == (b >= 0) && (sum >= 0) != (a >= 0) {
		return sum, false
	}
	return sum, true
}

// checkedSum totals values, reporting false on int64 overflow.
func checkedSum[M ~map[string]Amount](values M) (Amount, bool) {
	var total Amount
	for _, v := range values {
		var ok bool
		if total, ok = add(total, v); !ok {
			return 0, false
		}
	}
	return total, true
}
