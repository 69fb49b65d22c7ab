package views

import (
	"testing"
	"time"

	"github.com/bujotrack/bujotrack/internal/models"
)

func sortableTask(id string, status models.Status, due *time.Time, priority int, created time.Time) *models.Task {
	return &models.Task{
		ID:        id,
		OwnerID:   owner,
		Content:   id,
		Status:    status,
		DueDate:   due,
		Priority:  priority,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func assertOrder(t *testing.T, tasks []*models.Task, want []string) {
	t.Helper()
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
	}
	for i, id := range want {
		if tasks[i].ID != id {
			got := make([]string, len(tasks))
			for j, task := range tasks {
				got[j] = task.ID
			}
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSortPendingFirst(t *testing.T) {
	created := day(10, 9)
	tasks := []*models.Task{
		sortableTask("completed", models.StatusCompleted, nil, 1, created),
		sortableTask("migrated", models.StatusMigratedFuture, timePtr(day(20, 0)), 1, created),
		sortableTask("pending", models.StatusPending, nil, 0, created),
	}

	Sort(tasks)
	if tasks[0].ID != "pending" {
		t.Fatalf("first task = %s, want pending", tasks[0].ID)
	}
}

func TestSortScheduledBeforeUnscheduled(t *testing.T) {
	created := day(10, 9)
	tasks := []*models.Task{
		sortableTask("unscheduled", models.StatusPending, nil, 1, created),
		sortableTask("scheduled", models.StatusPending, timePtr(day(15, 0)), 1, created),
	}

	Sort(tasks)
	assertOrder(t, tasks, []string{"scheduled", "unscheduled"})
}

func TestSortPriorityOrder(t *testing.T) {
	created := day(10, 9)
	tasks := []*models.Task{
		sortableTask("none", models.StatusPending, nil, 0, created),
		sortableTask("low", models.StatusPending, nil, 3, created),
		sortableTask("high", models.StatusPending, nil, 1, created),
		sortableTask("mid", models.StatusPending, nil, 2, created),
	}

	Sort(tasks)
	assertOrder(t, tasks, []string{"high", "mid", "low", "none"})
}

func TestSortNewestFirstWithinTies(t *testing.T) {
	tasks := []*models.Task{
		sortableTask("older", models.StatusPending, nil, 2, day(10, 9)),
		sortableTask("newer", models.StatusPending, nil, 2, day(12, 9)),
	}

	Sort(tasks)
	assertOrder(t, tasks, []string{"newer", "older"})
}

func TestSortFullOrder(t *testing.T) {
	tasks := []*models.Task{
		sortableTask("done-scheduled", models.StatusCompleted, timePtr(day(15, 0)), 0, day(10, 9)),
		sortableTask("pending-unscheduled-none", models.StatusPending, nil, 0, day(10, 9)),
		sortableTask("pending-scheduled-p2", models.StatusPending, timePtr(day(15, 0)), 2, day(10, 9)),
		sortableTask("pending-scheduled-p1", models.StatusPending, timePtr(day(15, 0)), 1, day(9, 9)),
		sortableTask("pending-unscheduled-p1", models.StatusPending, nil, 1, day(10, 9)),
	}

	Sort(tasks)
	assertOrder(t, tasks, []string{
		"pending-scheduled-p1",
		"pending-scheduled-p2",
		"pending-unscheduled-p1",
		"pending-unscheduled-none",
		"done-scheduled",
	})
}
