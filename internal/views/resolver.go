// Package views decides which tasks belong in a requested calendar view
// and in what order. It is pure computation: resolving a view produces a
// declarative Query that the store executes, and the same Query matched
// against the same tasks always yields the same list.
package views

import (
	"errors"
	"time"

	"github.com/bujotrack/bujotrack/internal/models"
	"github.com/bujotrack/bujotrack/internal/timeutil"
)

var ErrInvalidView = errors.New("invalid view type")

type View string

const (
	ViewDaily   View = "daily"
	ViewWeekly  View = "weekly"
	ViewMonthly View = "monthly"
	ViewYearly  View = "yearly"
	ViewAll     View = "all"
)

// Query is a resolved, not-yet-executed view selection: an owner scope,
// a view kind and, for ranged views, the UTC day boundaries.
type Query struct {
	Owner string
	View  View
	Start time.Time
	End   time.Time
}

func (q Query) Ranged() bool {
	return q.View != ViewAll
}

// Resolve computes the boundaries and predicate scope for a view
// anchored at the given date. An unrecognized view is a contract
// violation at the boundary and fails fast.
func Resolve(view View, anchor time.Time, owner string) (Query, error) {
	q := Query{Owner: owner, View: view}
	switch view {
	case ViewDaily:
		q.Start, q.End = timeutil.DayBounds(anchor)
	case ViewWeekly:
		q.Start, q.End = timeutil.WeekBounds(anchor)
	case ViewMonthly:
		q.Start, q.End = timeutil.MonthBounds(anchor)
	case ViewYearly:
		q.Start, q.End = timeutil.YearBounds(anchor)
	case ViewAll:
	default:
		return Query{}, ErrInvalidView
	}
	return q, nil
}

// Matches is the canonical predicate for the query. The store mirrors
// it in SQL; this form is authoritative.
//
// Ranged views admit a task when any of three clauses holds:
//
//  1. its due date falls inside the range, whatever its status;
//  2. it was completed inside the range and the range is its relevant
//     window (due inside the range, or no due date at all);
//  3. it is unscheduled pending work created on or before the range
//     end, which rolls forward until the user resolves it.
//
// Backlogged tasks never match, and neither do tasks of other owners.
func (q Query) Matches(t *models.Task) bool {
	if t.OwnerID != q.Owner || t.IsBacklog {
		return false
	}
	if !q.Ranged() {
		return t.DueDate != nil ||
			t.Status == models.StatusCompleted ||
			t.Status == models.StatusPending
	}

	if t.DueDate != nil && inRange(*t.DueDate, q.Start, q.End) {
		return true
	}
	if t.Status == models.StatusCompleted && inRange(t.CompletionTime(), q.Start, q.End) {
		if t.DueDate == nil || inRange(*t.DueDate, q.Start, q.End) {
			return true
		}
	}
	if t.DueDate == nil && t.Status == models.StatusPending && !t.CreatedAt.After(q.End) {
		return true
	}
	return false
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
