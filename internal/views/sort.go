package views

import (
	"sort"

	"github.com/bujotrack/bujotrack/internal/models"
)

// Sort orders tasks the way the journal shows them: pending work first,
// scheduled before unscheduled, high priority before low, newest first.
// Clients must not re-sort; this ordering is the contract.
func Sort(tasks []*models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		ap, bp := a.Status == models.StatusPending, b.Status == models.StatusPending
		if ap != bp {
			return ap
		}

		as, bs := a.Scheduled(), b.Scheduled()
		if as != bs {
			return as
		}

		ar, br := priorityRank(a.Priority), priorityRank(b.Priority)
		if ar != br {
			return ar < br
		}

		return a.CreatedAt.After(b.CreatedAt)
	})
}

// priorityRank maps priority 1..3 to itself and "no priority" past the
// lowest real priority, so 1 sorts before 2 before 3 before none.
func priorityRank(p int) int {
	if p == models.PriorityNone {
		return models.PriorityLow + 1
	}
	return p
}
