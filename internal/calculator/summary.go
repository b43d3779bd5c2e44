package calculator

import "github.com/cybereco/justsplit/internal/models"

// TotalByCurrency sums expense amounts grouped by currency code.
func TotalByCurrency(expenses []models.Expense) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range expenses {
		totals[e.Currency] += e.Amount
	}
	return totals
}

// UnsettledAmount sums the amounts of expenses not yet settled.
func UnsettledAmount(expenses []models.Expense) float64 {
	total := 0.0
	for _, e := range expenses {
		if !e.Settled {
			total += e.Amount
		}
	}
	return total
}

// SettledPercentage reports how much of the total expense amount has been
// settled, as a percentage. An empty or zero-amount expense list reports 0.
func SettledPercentage(expenses []models.Expense) float64 {
	total, settled := 0.0, 0.0
	for _, e := range expenses {
		total += e.Amount
		if e.Settled {
			settled += e.Amount
		}
	}
	if total == 0 {
		return 0
	}
	return settled / total * 100
}
