package models

import "time"

type Status string

const (
	StatusPending        Status = "pending"
	StatusCompleted      Status = "completed"
	StatusMigratedBack   Status = "migrated_back"
	StatusMigratedFuture Status = "migrated_future"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusMigratedBack, StatusMigratedFuture:
		return true
	}
	return false
}

// Signifier is the bullet-journal notation category of an entry.
// It is presentation only and moves independently of Status.
type Signifier string

const (
	SignifierTask            Signifier = "task"
	SignifierEvent           Signifier = "event"
	SignifierCompleted       Signifier = "completed"
	SignifierMigratedBacklog Signifier = "migrated_backlog"
	SignifierMigratedFuture  Signifier = "migrated_future"
	SignifierNote            Signifier = "note"
	SignifierPriority        Signifier = "priority_marker"
	SignifierQuestion        Signifier = "question"
	SignifierTag             Signifier = "tag_marker"
)

var signifierSymbols = map[Signifier]string{
	SignifierTask:            "●",
	SignifierEvent:           "○",
	SignifierCompleted:       "✘",
	SignifierMigratedBacklog: "‹",
	SignifierMigratedFuture:  "›",
	SignifierNote:            "⁃",
	SignifierPriority:        "✷",
	SignifierQuestion:        "?",
	SignifierTag:             "#",
}

func (s Signifier) Valid() bool {
	_, ok := signifierSymbols[s]
	return ok
}

// Symbol returns the journal glyph drawn next to the entry.
func (s Signifier) Symbol() string {
	return signifierSymbols[s]
}

const (
	PriorityNone = 0
	PriorityHigh = 1
	PriorityLow  = 3
)

type Task struct {
	ID        string
	OwnerID   string
	Content   string
	Signifier Signifier
	Status    Status
	// DueDate nil means the task is unscheduled and rolls
	// forward day to day until resolved.
	DueDate  *time.Time
	Priority int
	Tags     []string
	// IsBacklog parks the task outside every date-scoped view.
	// Migrating to backlog sets it; it can also be set at creation.
	IsBacklog bool
	// ParentID is a weak back-reference; the parent owns its subtasks.
	ParentID    *string
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CompletionTime reports when the task was completed. Rows written
// before the completed_at column existed fall back to UpdatedAt.
func (t *Task) CompletionTime() time.Time {
	if t.CompletedAt != nil {
		return *t.CompletedAt
	}
	return t.UpdatedAt
}

func (t *Task) Scheduled() bool {
	return t.DueDate != nil
}
