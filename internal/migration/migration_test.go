package migration

import (
	"errors"
	"testing"
	"time"

	"github.com/bujotrack/bujotrack/internal/models"
)

func baseTask() *models.Task {
	created := time.Date(2024, time.April, 10, 9, 0, 0, 0, time.UTC)
	due := time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)
	return &models.Task{
		ID:        "task-1",
		OwnerID:   "owner-1",
		Content:   "water the plants",
		Signifier: models.SignifierTask,
		Status:    models.StatusPending,
		DueDate:   &due,
		Priority:  2,
		Tags:      []string{"home", "garden"},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestToggleCompleteStampsCompletion(t *testing.T) {
	task := baseTask()
	now := time.Date(2024, time.April, 15, 10, 0, 0, 0, time.UTC)

	change := ToggleComplete(task, now)
	change.Apply(task)

	if task.Status != models.StatusCompleted {
		t.Fatalf("status = %s, want completed", task.Status)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Fatalf("completed_at = %v, want %v", task.CompletedAt, now)
	}
	if task.DueDate == nil {
		t.Fatalf("toggle must not touch the due date")
	}
	if !task.UpdatedAt.Equal(now) {
		t.Fatalf("updated_at = %v, want %v", task.UpdatedAt, now)
	}
}

func TestToggleCompleteReopens(t *testing.T) {
	task := baseTask()
	first := time.Date(2024, time.April, 15, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	ToggleComplete(task, first).Apply(task)
	ToggleComplete(task, second).Apply(task)

	if task.Status != models.StatusPending {
		t.Fatalf("status = %s, want pending", task.Status)
	}
	if task.CompletedAt != nil {
		t.Fatalf("reopening must clear the completion stamp")
	}
	if task.DueDate == nil {
		t.Fatalf("due date must survive a reopen")
	}
}

func TestToBacklogClearsDueDate(t *testing.T) {
	task := baseTask()
	now := time.Date(2024, time.April, 16, 8, 0, 0, 0, time.UTC)

	ToBacklog(task, now).Apply(task)

	if task.Status != models.StatusMigratedBack {
		t.Fatalf("status = %s, want migrated_back", task.Status)
	}
	if task.DueDate != nil {
		t.Fatalf("backlog migration must clear the due date")
	}
	if !task.IsBacklog {
		t.Fatalf("backlog migration must set the backlog flag")
	}
}

func TestToFutureRequiresTarget(t *testing.T) {
	task := baseTask()
	_, err := ToFuture(task, nil, time.Now())
	if !errors.Is(err, ErrMissingTargetDate) {
		t.Fatalf("err = %v, want ErrMissingTargetDate", err)
	}
}

func TestToFutureSetsTargetDate(t *testing.T) {
	task := baseTask()
	now := time.Date(2024, time.April, 16, 8, 0, 0, 0, time.UTC)
	target := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	change, err := ToFuture(task, &target, now)
	if err != nil {
		t.Fatalf("ToFuture: %v", err)
	}
	change.Apply(task)

	if task.Status != models.StatusMigratedFuture {
		t.Fatalf("status = %s, want migrated_future", task.Status)
	}
	if task.DueDate == nil || !task.DueDate.Equal(target) {
		t.Fatalf("due_date = %v, want %v", task.DueDate, target)
	}
}

func TestToFutureRetargetsMigratedTask(t *testing.T) {
	task := baseTask()
	now := time.Date(2024, time.April, 16, 8, 0, 0, 0, time.UTC)
	first := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	change, err := ToFuture(task, &first, now)
	if err != nil {
		t.Fatalf("ToFuture: %v", err)
	}
	change.Apply(task)

	change, err = ToFuture(task, &second, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("ToFuture again: %v", err)
	}
	change.Apply(task)

	if !task.DueDate.Equal(second) {
		t.Fatalf("due_date = %v, want %v", task.DueDate, second)
	}
}

func TestToFutureUnparksBackloggedTask(t *testing.T) {
	task := baseTask()
	now := time.Date(2024, time.April, 16, 8, 0, 0, 0, time.UTC)
	target := time.Date(2024, time.April, 20, 0, 0, 0, 0, time.UTC)

	ToBacklog(task, now).Apply(task)
	if !task.IsBacklog {
		t.Fatalf("precondition: backlog migration must set the flag")
	}

	change, err := ToFuture(task, &target, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("ToFuture: %v", err)
	}
	change.Apply(task)

	if task.IsBacklog {
		t.Fatalf("rescheduling must clear the backlog flag")
	}
	if task.Status != models.StatusMigratedFuture {
		t.Fatalf("status = %s, want migrated_future", task.Status)
	}
	if task.DueDate == nil || !task.DueDate.Equal(target) {
		t.Fatalf("due_date = %v, want %v", task.DueDate, target)
	}
}

func TestCarryForwardNonDestructive(t *testing.T) {
	task := baseTask()
	ToggleComplete(task, task.CreatedAt.Add(time.Hour)).Apply(task)

	originalStatus := task.Status
	originalDue := *task.DueDate
	originalCreated := task.CreatedAt

	now := time.Date(2024, time.April, 20, 7, 0, 0, 0, time.UTC)
	fresh := CarryForward(task, now)

	if task.Status != originalStatus || !task.DueDate.Equal(originalDue) || !task.CreatedAt.Equal(originalCreated) {
		t.Fatalf("carry-forward mutated the source task")
	}

	if fresh.ID == task.ID || fresh.ID == "" {
		t.Errorf("copy must get a fresh id, got %q", fresh.ID)
	}
	if fresh.Status != models.StatusPending {
		t.Errorf("copy status = %s, want pending", fresh.Status)
	}
	if fresh.DueDate != nil {
		t.Errorf("copy must be unscheduled")
	}
	if !fresh.CreatedAt.Equal(now) {
		t.Errorf("copy created_at = %v, want %v", fresh.CreatedAt, now)
	}
	if fresh.Content != task.Content || fresh.Priority != task.Priority {
		t.Errorf("copy must keep content and priority")
	}
	if len(fresh.Tags) != len(task.Tags) {
		t.Fatalf("copy must keep tags")
	}

	// The tag slice is a copy, not a shared backing array.
	fresh.Tags[0] = "changed"
	if task.Tags[0] == "changed" {
		t.Errorf("copy shares the source tag slice")
	}
}

func TestTransitionsKeepUpdatedAtMonotonic(t *testing.T) {
	task := baseTask()
	now := task.CreatedAt

	for i := 0; i < 4; i++ {
		now = now.Add(time.Hour)
		ToggleComplete(task, now).Apply(task)
		if task.UpdatedAt.Before(task.CreatedAt) {
			t.Fatalf("updated_at fell behind created_at")
		}
		if !task.UpdatedAt.Equal(now) {
			t.Fatalf("updated_at = %v, want %v", task.UpdatedAt, now)
		}
	}
}
