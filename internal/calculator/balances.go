package calculator

import "github.com/cybereco/justsplit/internal/models"

// CalculateBalances nets a set of shared expenses into suggested transfers
// that settle every participant's debt.
//
// Algorithm:
//   - Accumulate per-participant net balances: the payer gains the full
//     amount, every participant (payer included, if listed) loses an equal
//     share.
//   - Partition participants into debtors and creditors by sign, in master
//     list order. Zero balances drop out entirely.
//   - Greedy matching, debtor-major / creditor-minor: each debtor repeatedly
//     transfers min(remaining debt, remaining credit) to the current creditor
//     until the debt is exhausted or creditors run out.
//
// The greedy pass guarantees exact zero-sum settlement under exact arithmetic
// but not a minimum transaction count. No epsilon is applied during matching;
// the debt and credit totals are equal by construction because every unit
// subtracted from participants was added to a payer.
//
// An expense participant absent from the master list still accumulates a
// balance but is never partitioned, so it is silently treated as a zero
// balance source rather than an error.
func CalculateBalances(expenses []models.Expense, participants []models.Participant) []models.Balance {
	net := make(map[string]float64, len(participants))
	for _, p := range participants {
		net[p.ID] = 0
	}

	for _, e := range expenses {
		net[e.PaidBy] += e.Amount
		share := EqualSplit(e)
		for _, id := range e.Participants {
			net[id] -= share
		}
	}

	type stake struct {
		id     string
		amount float64
	}
	var debtors, creditors []stake
	for _, p := range participants {
		switch b := net[p.ID]; {
		case b < 0:
			debtors = append(debtors, stake{id: p.ID, amount: -b})
		case b > 0:
			creditors = append(creditors, stake{id: p.ID, amount: b})
		}
	}

	var balances []models.Balance
	ci := 0
	for di := range debtors {
		for debtors[di].amount > 0 && ci < len(creditors) {
			transfer := debtors[di].amount
			if creditors[ci].amount < transfer {
				transfer = creditors[ci].amount
			}
			if transfer > 0 {
				balances = append(balances, models.Balance{
					From:   debtors[di].id,
					To:     creditors[ci].id,
					Amount: transfer,
				})
			}
			debtors[di].amount -= transfer
			creditors[ci].amount -= transfer
			if creditors[ci].amount <= 0 {
				ci++
			}
		}
	}
	return balances
}
