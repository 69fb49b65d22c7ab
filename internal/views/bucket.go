package views

import (
	"time"

	"github.com/bujotrack/bujotrack/internal/models"
	"github.com/bujotrack/bujotrack/internal/timeutil"
)

// BucketDateLayout keys bucket maps; ISO dates sort lexically in
// calendar order.
const BucketDateLayout = "2006-01-02"

// BucketByDate assigns each task a single representative calendar day
// and groups tasks by it, for calendar-grid style views.
//
// The representative day is picked by the first rule that applies:
// completed tasks sit on their completion day; future-scheduled tasks
// on their due day; overdue and due-today tasks roll to today; so does
// unscheduled pending work. Anything else (backlogged, migrated away)
// has no day and is excluded.
//
// Every day of [start, end] appears in the result, empty days included.
// Tasks whose day falls outside the range are dropped. Within a day,
// tasks carry the canonical view ordering.
func BucketByDate(tasks []*models.Task, start, end, today time.Time) map[string][]*models.Task {
	startDay := timeutil.Day(start)
	endDay := timeutil.Day(end)
	todayDay := timeutil.Day(today)

	buckets := make(map[string][]*models.Task)
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		buckets[d.Format(BucketDateLayout)] = []*models.Task{}
	}

	for _, t := range tasks {
		day, ok := bucketDay(t, todayDay)
		if !ok || day.Before(startDay) || day.After(endDay) {
			continue
		}
		key := day.Format(BucketDateLayout)
		buckets[key] = append(buckets[key], t)
	}

	for _, group := range buckets {
		Sort(group)
	}
	return buckets
}

func bucketDay(t *models.Task, today time.Time) (time.Time, bool) {
	switch {
	case t.Status == models.StatusCompleted:
		return timeutil.Day(t.CompletionTime()), true
	case t.DueDate != nil:
		due := timeutil.Day(*t.DueDate)
		if due.After(today) {
			return due, true
		}
		// Overdue and due-today both land on today.
		return today, true
	case t.Status == models.StatusPending && !t.IsBacklog:
		return today, true
	}
	return time.Time{}, false
}
