package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bujotrack/bujotrack/internal/views"
)

const anchorDateLayout = "2006-01-02"

// maxBucketRangeDays bounds the bucket grid; the aggregator allocates
// one bucket per day of the requested span.
const maxBucketRangeDays = 366

// HandleGetView serves /tasks?view=daily&date=2024-04-20. The date
// defaults to today; the view is mandatory and validated by the
// resolver.
func (h *handlerImpl) HandleGetView(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	anchor := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			h.logger.Error().
				Err(err).
				Str("date", raw).
				Msg("failed to parse anchor date")
			abort(c, newBadRequestError(errInvalidAnchorDate.Error()))
			return
		}
		anchor = parsed
	}

	query, err := views.Resolve(views.View(c.Query("view")), anchor, ownerID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("view", c.Query("view")).
			Msg("failed to resolve view")
		abort(c, newBadRequestError(err.Error()))
		return
	}

	tasks, err := h.tasks.ResolveTasks(c, query)
	if err != nil {
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"view":  query.View,
		"tasks": newTaskListResponse(tasks),
	})
}

// HandleGetBuckets serves the calendar-grid grouping over an explicit
// date range: /tasks/buckets?start=2024-04-14&end=2024-04-20.
func (h *handlerImpl) HandleGetBuckets(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	start, err := parseDate(c.Query("start"))
	if err != nil {
		abort(c, newBadRequestError(errInvalidDateRange.Error()))
		return
	}
	end, err := parseDate(c.Query("end"))
	if err != nil || end.Before(start) || end.Sub(start) > maxBucketRangeDays*24*time.Hour {
		abort(c, newBadRequestError(errInvalidDateRange.Error()))
		return
	}

	// The grid needs every non-backlog task; bucketing decides which
	// ones land inside the range.
	query, err := views.Resolve(views.ViewAll, time.Now(), ownerID)
	if err != nil {
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}
	tasks, err := h.tasks.ResolveTasks(c, query)
	if err != nil {
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	buckets := views.BucketByDate(tasks, start, end, time.Now())

	response := make(map[string][]taskResponse, len(buckets))
	for date, group := range buckets {
		response[date] = newTaskListResponse(group)
	}
	c.JSON(http.StatusOK, gin.H{"buckets": response})
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("empty date")
	}
	if t, err := time.Parse(anchorDateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
