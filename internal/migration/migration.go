// Package migration encodes the journal's task lifecycle transitions.
// Each transition computes the full field set it will write before any
// store call happens, so a failed write leaves the task untouched.
package migration

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bujotrack/bujotrack/internal/models"
)

var ErrMissingTargetDate = errors.New("missing target date")

// Change is the complete field set a transition writes. Transitions are
// total over every starting state: re-running one is harmless and just
// refreshes the outcome.
type Change struct {
	Status      models.Status
	DueDate     *time.Time
	CompletedAt *time.Time
	IsBacklog   bool
	UpdatedAt   time.Time
}

// Apply mutates the task in memory the same way the store write does.
func (c Change) Apply(t *models.Task) {
	t.Status = c.Status
	t.DueDate = c.DueDate
	t.CompletedAt = c.CompletedAt
	t.IsBacklog = c.IsBacklog
	t.UpdatedAt = c.UpdatedAt
}

// ToggleComplete flips a task between pending and completed. Completing
// stamps the completion time and leaves the due date alone; reopening
// clears the stamp so the task is again selected purely by its due
// date or unscheduled rolling-forward rules.
func ToggleComplete(t *models.Task, now time.Time) Change {
	c := Change{
		DueDate:   t.DueDate,
		IsBacklog: t.IsBacklog,
		UpdatedAt: now,
	}
	if t.Status == models.StatusCompleted {
		c.Status = models.StatusPending
	} else {
		c.Status = models.StatusCompleted
		completedAt := now
		c.CompletedAt = &completedAt
	}
	return c
}

// ToBacklog parks the task outside every date-scoped view. The backlog
// flag is the one exclusion signal the resolver honors; the
// migrated_back status records the lifecycle step and always implies
// the flag, so the two can never disagree.
func ToBacklog(t *models.Task, now time.Time) Change {
	return Change{
		Status:    models.StatusMigratedBack,
		DueDate:   nil,
		IsBacklog: true,
		UpdatedAt: now,
	}
}

// ToFuture reschedules the task to a concrete future date. Calling it
// on an already-migrated task simply moves the target. Rescheduling is
// the way out of the backlog, so the backlog flag always clears here;
// a parked task given a target date shows up on that day again.
func ToFuture(t *models.Task, target *time.Time, now time.Time) (Change, error) {
	if target == nil {
		return Change{}, ErrMissingTargetDate
	}
	due := *target
	return Change{
		Status:    models.StatusMigratedFuture,
		DueDate:   &due,
		IsBacklog: false,
		UpdatedAt: now,
	}, nil
}

// CarryForward duplicates the entry as a fresh unscheduled pending
// task, leaving the original's history untouched.
func CarryForward(t *models.Task, now time.Time) *models.Task {
	return &models.Task{
		ID:        uuid.NewString(),
		OwnerID:   t.OwnerID,
		Content:   t.Content,
		Signifier: t.Signifier,
		Status:    models.StatusPending,
		Priority:  t.Priority,
		Tags:      append([]string(nil), t.Tags...),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
