package types

import "errors"

// Amount is a signed base-unit monetary value. Certificates and their
// outputs use signed amounts because backward-transfer outputs carry a
// sentinel negative value (-1) to mark the null form.
type Amount int64

// MaxMoney is the monetary-range cap shared by every amount in this module:
// 21e14 base units.
const MaxMoney Amount = 21e14

// ErrAmountOutOfRange is returned when an amount is negative (outside of
// the -1 null sentinel), or a sum of amounts would exceed MaxMoney.
var ErrAmountOutOfRange = errors.New("amount out of range")

// Valid reports whether a is within the legal per-output range: either
// the null sentinel (-1) or a non-negative value not exceeding MaxMoney.
func (a Amount) Valid() bool {
	if a == NullBackwardTransferValue {
		return true
	}
	return a >= 0 && a <= MaxMoney
}

// SumAmounts adds a sequence of amounts, rejecting negative terms (other
// than the null sentinel, which callers must filter before summing) and
// reporting ErrAmountOutOfRange on overflow past MaxMoney.
func SumAmounts(amounts ...Amount) (Amount, error) {
	var sum Amount
	for _, a := range amounts {
		if a < 0 {
			return 0, ErrAmountOutOfRange
		}
		sum += a
		if sum > MaxMoney {
			return 0, ErrAmountOutOfRange
		}
	}
	return sum, nil
}
