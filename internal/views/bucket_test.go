package views

import (
	"testing"

	"github.com/bujotrack/bujotrack/internal/models"
)

func TestBucketOverdueRollsToToday(t *testing.T) {
	task := pendingTask(day(1, 9))
	task.DueDate = timePtr(day(10, 0))

	buckets := BucketByDate([]*models.Task{task}, day(14, 0), day(20, 0), day(15, 0))
	if got := len(buckets["2024-04-15"]); got != 1 {
		t.Fatalf("overdue task not bucketed on today: %v", buckets)
	}
}

func TestBucketFutureDueOnDueDay(t *testing.T) {
	task := pendingTask(day(1, 9))
	task.DueDate = timePtr(day(20, 0))

	buckets := BucketByDate([]*models.Task{task}, day(14, 0), day(20, 0), day(15, 0))
	if got := len(buckets["2024-04-20"]); got != 1 {
		t.Fatalf("future task not bucketed on due day: %v", buckets)
	}
	if got := len(buckets["2024-04-15"]); got != 0 {
		t.Fatalf("future task leaked into today: %v", buckets)
	}
}

func TestBucketDueTodayOnToday(t *testing.T) {
	task := pendingTask(day(1, 9))
	task.DueDate = timePtr(day(15, 11))

	buckets := BucketByDate([]*models.Task{task}, day(14, 0), day(20, 0), day(15, 0))
	if got := len(buckets["2024-04-15"]); got != 1 {
		t.Fatalf("due-today task not bucketed on today: %v", buckets)
	}
}

func TestBucketCompletedOnCompletionDay(t *testing.T) {
	task := pendingTask(day(1, 9))
	task.Status = models.StatusCompleted
	task.CompletedAt = timePtr(day(16, 14))
	// A pending-looking due date must lose to the completed rule.
	task.DueDate = timePtr(day(19, 0))

	buckets := BucketByDate([]*models.Task{task}, day(14, 0), day(20, 0), day(15, 0))
	if got := len(buckets["2024-04-16"]); got != 1 {
		t.Fatalf("completed task not bucketed on completion day: %v", buckets)
	}
	if got := len(buckets["2024-04-19"]); got != 0 {
		t.Fatalf("completed rule should win over due date: %v", buckets)
	}
}

func TestBucketUnscheduledPendingOnToday(t *testing.T) {
	task := pendingTask(day(1, 9))

	buckets := BucketByDate([]*models.Task{task}, day(14, 0), day(20, 0), day(15, 0))
	if got := len(buckets["2024-04-15"]); got != 1 {
		t.Fatalf("unscheduled pending task not on today: %v", buckets)
	}
}

func TestBucketBacklogExcluded(t *testing.T) {
	task := pendingTask(day(1, 9))
	task.IsBacklog = true

	buckets := BucketByDate([]*models.Task{task}, day(14, 0), day(20, 0), day(15, 0))
	for date, group := range buckets {
		if len(group) != 0 {
			t.Fatalf("backlog task bucketed on %s", date)
		}
	}
}

func TestBucketMigratedBackExcluded(t *testing.T) {
	task := pendingTask(day(1, 9))
	task.Status = models.StatusMigratedBack
	task.IsBacklog = true

	buckets := BucketByDate([]*models.Task{task}, day(14, 0), day(20, 0), day(15, 0))
	for date, group := range buckets {
		if len(group) != 0 {
			t.Fatalf("migrated_back task bucketed on %s", date)
		}
	}
}

func TestBucketOutOfRangeDropped(t *testing.T) {
	task := pendingTask(day(1, 9))
	task.DueDate = timePtr(day(25, 0)) // future, past range end

	buckets := BucketByDate([]*models.Task{task}, day(14, 0), day(20, 0), day(15, 0))
	total := 0
	for _, group := range buckets {
		total += len(group)
	}
	if total != 0 {
		t.Fatalf("out-of-range bucket not dropped: %v", buckets)
	}
}

func TestBucketRangeFullyPopulated(t *testing.T) {
	buckets := BucketByDate(nil, day(14, 0), day(20, 0), day(15, 0))
	if len(buckets) != 7 {
		t.Fatalf("got %d buckets, want 7", len(buckets))
	}
	for d := 14; d <= 20; d++ {
		key := day(d, 0).Format(BucketDateLayout)
		group, ok := buckets[key]
		if !ok {
			t.Fatalf("missing bucket %s", key)
		}
		if group == nil || len(group) != 0 {
			t.Fatalf("bucket %s should be an empty list", key)
		}
	}
}

func TestBucketGroupsSorted(t *testing.T) {
	high := pendingTask(day(1, 9))
	high.ID = "high"
	high.Priority = 1

	none := pendingTask(day(2, 9))
	none.ID = "none"

	buckets := BucketByDate([]*models.Task{none, high}, day(14, 0), day(20, 0), day(15, 0))
	group := buckets["2024-04-15"]
	if len(group) != 2 {
		t.Fatalf("got %d tasks on today, want 2", len(group))
	}
	if group[0].ID != "high" {
		t.Fatalf("bucket not in canonical order: %s first", group[0].ID)
	}
}
