// Package calculator implements the split and balance-netting math for shared
// expenses. All arithmetic is float64; the functions are pure and never panic
// for any input shape the types allow. Rounding, if any, happens at the
// display layer.
package calculator

import (
	"errors"
	"math"

	"github.com/cybereco/justsplit/internal/models"
)

// Tolerance is the absolute drift allowed when validating that percentage or
// custom shares add up.
const Tolerance = 0.01

var (
	ErrPercentSum = errors.New("percentages must sum to 100")
	ErrShareSum   = errors.New("shares must sum to the expense amount")
)

// EqualSplit returns each participant's share of an equally split expense.
// No rounding is applied; 100/3 stays 33.333….
//
// Precondition: the expense has at least one participant. An empty list is not
// guarded and divides by zero, yielding +Inf (or NaN for a zero amount), the
// same degenerate values callers of the original web app saw.
func EqualSplit(expense models.Expense) float64 {
	return expense.Amount / float64(len(expense.Participants))
}

// PercentageSplit converts per-participant percentages into amounts. The
// percentages must sum to 100 within Tolerance.
func PercentageSplit(amount float64, percentages map[string]float64) (map[string]float64, error) {
	sum := 0.0
	for _, p := range percentages {
		sum += p
	}
	if math.Abs(sum-100) > Tolerance {
		return nil, ErrPercentSum
	}
	shares := make(map[string]float64, len(percentages))
	for id, p := range percentages {
		shares[id] = amount * p / 100
	}
	return shares, nil
}

// CustomSplit validates explicitly entered shares against the expense amount,
// within Tolerance. The shares are returned unchanged on success so callers
// can treat all three split modes uniformly.
func CustomSplit(amount float64, shares map[string]float64) (map[string]float64, error) {
	sum := 0.0
	for _, s := range shares {
		sum += s
	}
	if math.Abs(sum-amount) > Tolerance {
		return nil, ErrShareSum
	}
	return shares, nil
}
