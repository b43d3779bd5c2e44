package timeline

import (
	"math"
	"sort"

	"github.com/cybereco/justsplit/internal/models"
)

// ClusterThreshold is the position distance under which two expenses are
// merged into one visual group.
const ClusterThreshold = 5.0

// Group is a cluster of expenses too close to distinguish on the rendered
// axis. Position is band-aware (see PositionPercentage) and is the arithmetic
// mean of the members' individual positions.
type Group struct {
	Position float64          `json:"position"`
	Expenses []models.Expense `json:"expenses"`
}

type cluster struct {
	firstPos  float64
	positions []float64
	expenses  []models.Expense
}

// GroupNearby computes a position for every expense on the event's axis and
// clusters adjacent ones. The scan is a single greedy pass over expenses in
// ascending position order; a candidate joins the first group whose FIRST
// member is within ClusterThreshold of it. Comparing against the first member
// rather than a moving centroid prevents chaining, where a long run of
// expenses each just under the threshold apart would merge transitively into
// one group spanning far more than the threshold.
//
// Groups are returned in creation order. That is generally ascending by
// position, but not guaranteed once mean-recomputation shifts a group's
// displayed position.
func GroupNearby(expenses []models.Expense, event models.Event) []Group {
	start := event.StartDate
	if start == "" {
		// Events predating start/end dates carry a single date instead.
		start = event.Date
	}

	type placed struct {
		expense  models.Expense
		position float64
	}
	placements := make([]placed, len(expenses))
	for i, e := range expenses {
		placements[i] = placed{expense: e, position: PositionPercentage(e.Date, start, event.EndDate)}
	}
	sort.SliceStable(placements, func(i, j int) bool {
		return placements[i].position < placements[j].position
	})

	var clusters []*cluster
	for _, p := range placements {
		var home *cluster
		for _, c := range clusters {
			if math.Abs(p.position-c.firstPos) <= ClusterThreshold {
				home = c
				break
			}
		}
		if home == nil {
			clusters = append(clusters, &cluster{
				firstPos:  p.position,
				positions: []float64{p.position},
				expenses:  []models.Expense{p.expense},
			})
			continue
		}
		home.positions = append(home.positions, p.position)
		home.expenses = append(home.expenses, p.expense)
	}

	groups := make([]Group, len(clusters))
	for i, c := range clusters {
		sum := 0.0
		for _, pos := range c.positions {
			sum += pos
		}
		groups[i] = Group{
			Position: sum / float64(len(c.positions)),
			Expenses: c.expenses,
		}
	}
	return groups
}
