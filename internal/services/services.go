package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bujotrack/bujotrack/internal/models"
	"github.com/bujotrack/bujotrack/internal/views"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrEmptyContent     = errors.New("task content is empty")
	ErrInvalidPriority  = errors.New("invalid task priority")
	ErrInvalidSignifier = errors.New("invalid task signifier")

	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")
)

type TaskService interface {
	// CreateTask validates and stores a new journal entry. Content must
	// be non-empty after trimming; signifier defaults to the plain task
	// bullet; status starts pending.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// ResolveTasks executes a resolved view query against the store and
	// returns the matching tasks in the canonical order.
	ResolveTasks(ctx context.Context, query views.Query) ([]*models.Task, error)

	// GetTask returns one task with its subtasks populated.
	//
	// It returns ErrTaskNotFound when the id does not exist or belongs
	// to another owner.
	GetTask(ctx context.Context, ownerID, taskID string) (*models.Task, []*models.Task, error)

	// UpdateTask edits the presentational fields of a task. Nil params
	// leave the corresponding field unchanged.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// ToggleComplete flips pending/completed, stamping or clearing the
	// completion time.
	ToggleComplete(ctx context.Context, ownerID, taskID string) (*models.Task, error)

	// MigrateToBacklog parks the task outside all date-scoped views.
	MigrateToBacklog(ctx context.Context, ownerID, taskID string) (*models.Task, error)

	// MigrateToFuture reschedules the task to the target date. A nil
	// target fails with migration.ErrMissingTargetDate.
	MigrateToFuture(ctx context.Context, ownerID, taskID string, target *time.Time) (*models.Task, error)

	// CarryForward clones the entry as a fresh unscheduled pending task
	// without touching the original.
	CarryForward(ctx context.Context, ownerID, taskID string) (*models.Task, error)

	// DeleteTask removes the task and all of its subtasks. Deleting an
	// id that does not exist is ErrTaskNotFound; the cascaded subtask
	// cleanup is silent about rows already gone.
	DeleteTask(ctx context.Context, ownerID, taskID string) error
}

type AuthService interface {
	// Login authenticates the user by email and password, replaces any
	// existing sessions and mints a fresh JWT token pair.
	//
	// It returns ErrUserNotFound or ErrUserPasswordMismatch.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh rotates the session identified by the refresh token.
	//
	// It returns ErrSessionNotFound or ErrSessionExpired.
	Refresh(ctx context.Context, params RefreshParams) (*LoginResult, error)

	// Register creates a user, hashing the password, and logs them in.
	//
	// It returns ErrUserAlreadyExists when the email is taken.
	Register(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Logout invalidates every session of the user.
	Logout(ctx context.Context, userID string) error

	// ParseJWTToken returns the registered claims of a valid token or
	// jwt.ErrTokenExpired.
	ParseJWTToken(token string) (*jwt.RegisteredClaims, error)
}

type SessionService interface {
	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)
}

type CreateTaskParams struct {
	OwnerID   string
	Content   string
	Signifier models.Signifier
	DueDate   *time.Time
	Priority  int
	Tags      []string
	IsBacklog bool
	ParentID  *string
}

type UpdateTaskParams struct {
	OwnerID   string
	TaskID    string
	Content   *string
	Signifier *models.Signifier
	DueDate   *time.Time
	ClearDue  bool
	Priority  *int
	Tags      []string
}

type LoginParams struct {
	Email       string
	Password    string
	Fingerprint string
}

type LoginResult struct {
	UserID                string
	SessionID             string
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

type RefreshParams struct {
	RefreshToken string
	Fingerprint  string
}
