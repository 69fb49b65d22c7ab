package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/bujotrack/bujotrack/internal/migration"
	"github.com/bujotrack/bujotrack/internal/models"
	"github.com/bujotrack/bujotrack/internal/views"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

const taskColumns = `id,
       owner_id,
       content,
       signifier,
       status,
       due_date,
       priority,
       tags,
       is_backlog,
       parent_id,
       completed_at,
       created_at,
       updated_at`

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	content := strings.TrimSpace(params.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	signifier := params.Signifier
	if signifier == "" {
		signifier = models.SignifierTask
	}
	if !signifier.Valid() {
		return nil, ErrInvalidSignifier
	}
	if params.Priority != models.PriorityNone &&
		(params.Priority < models.PriorityHigh || params.Priority > models.PriorityLow) {
		return nil, ErrInvalidPriority
	}

	now := time.Now()
	task := &models.Task{
		ID:        uuid.NewString(),
		OwnerID:   params.OwnerID,
		Content:   content,
		Signifier: signifier,
		Status:    models.StatusPending,
		DueDate:   params.DueDate,
		Priority:  params.Priority,
		Tags:      params.Tags,
		IsBacklog: params.IsBacklog,
		ParentID:  params.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   owner_id,
                   content,
                   signifier,
                   status,
                   due_date,
                   priority,
                   tags,
                   is_backlog,
                   parent_id,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`
	_, err := s.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.OwnerID,
		task.Content,
		task.Signifier,
		task.Status,
		task.DueDate,
		task.Priority,
		task.Tags,
		task.IsBacklog,
		task.ParentID,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("owner_id", task.OwnerID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) ResolveTasks(ctx context.Context, query views.Query) ([]*models.Task, error) {
	// SQL mirror of views.Query.Matches; the Go predicate is the
	// authoritative definition.
	const selectRangedQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE owner_id = $1
  AND is_backlog = FALSE
  AND ((due_date >= $2 AND due_date <= $3)
    OR (status = 'completed'
        AND COALESCE(completed_at, updated_at) >= $2
        AND COALESCE(completed_at, updated_at) <= $3
        AND (due_date IS NULL OR (due_date >= $2 AND due_date <= $3)))
    OR (due_date IS NULL AND status = 'pending' AND created_at <= $3))
`
	const selectAllQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE owner_id = $1
  AND is_backlog = FALSE
  AND (due_date IS NOT NULL OR status = 'completed' OR status = 'pending')
`
	var (
		rows pgx.Rows
		err  error
	)
	if query.Ranged() {
		rows, err = s.pgPool.Query(ctx, selectRangedQuery, query.Owner, query.Start, query.End)
	} else {
		rows, err = s.pgPool.Query(ctx, selectAllQuery, query.Owner)
	}
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("view", string(query.View)).
			Msg("failed to select tasks for view")
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err = rows.Err(); err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	views.Sort(tasks)

	s.logger.Debug().
		Int("count", len(tasks)).
		Str("view", string(query.View)).
		Str("owner_id", query.Owner).
		Msg("resolved view")
	return tasks, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, ownerID, taskID string) (*models.Task, []*models.Task, error) {
	task, err := s.getTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, nil, err
	}

	const selectSubtasksQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE parent_id = $1 AND owner_id = $2
ORDER BY created_at
`
	rows, err := s.pgPool.Query(ctx, selectSubtasksQuery, taskID, ownerID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to select subtasks")
		return nil, nil, err
	}
	defer rows.Close()

	var subtasks []*models.Task
	for rows.Next() {
		sub, err := scanTask(rows)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan subtask")
			return nil, nil, err
		}
		subtasks = append(subtasks, sub)
	}
	if err = rows.Err(); err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, nil, err
	}

	return task, subtasks, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	task, err := s.getTask(ctx, params.OwnerID, params.TaskID)
	if err != nil {
		return nil, err
	}

	if params.Content != nil {
		content := strings.TrimSpace(*params.Content)
		if content == "" {
			return nil, ErrEmptyContent
		}
		task.Content = content
	}
	if params.Signifier != nil {
		if !params.Signifier.Valid() {
			return nil, ErrInvalidSignifier
		}
		task.Signifier = *params.Signifier
	}
	if params.ClearDue {
		task.DueDate = nil
	} else if params.DueDate != nil {
		task.DueDate = params.DueDate
	}
	if params.Priority != nil {
		p := *params.Priority
		if p != models.PriorityNone && (p < models.PriorityHigh || p > models.PriorityLow) {
			return nil, ErrInvalidPriority
		}
		task.Priority = p
	}
	if params.Tags != nil {
		task.Tags = params.Tags
	}
	task.UpdatedAt = time.Now()

	const updateTaskQuery = `
UPDATE tasks
SET content = $1,
    signifier = $2,
    due_date = $3,
    priority = $4,
    tags = $5,
    updated_at = $6
WHERE id = $7 AND owner_id = $8
`
	tag, err := s.pgPool.Exec(
		ctx,
		updateTaskQuery,
		task.Content,
		task.Signifier,
		task.DueDate,
		task.Priority,
		task.Tags,
		task.UpdatedAt,
		task.ID,
		task.OwnerID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrTaskNotFound
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("owner_id", task.OwnerID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) ToggleComplete(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	task, err := s.getTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	change := migration.ToggleComplete(task, time.Now())
	if err = s.applyChange(ctx, task, change); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("status", string(task.Status)).
		Msg("toggled task completion")
	return task, nil
}

func (s *taskServiceImpl) MigrateToBacklog(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	task, err := s.getTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	change := migration.ToBacklog(task, time.Now())
	if err = s.applyChange(ctx, task, change); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("migrated task to backlog")
	return task, nil
}

func (s *taskServiceImpl) MigrateToFuture(ctx context.Context, ownerID, taskID string, target *time.Time) (*models.Task, error) {
	task, err := s.getTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	change, err := migration.ToFuture(task, target, time.Now())
	if err != nil {
		return nil, err
	}
	if err = s.applyChange(ctx, task, change); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Time("target", *task.DueDate).
		Msg("migrated task to future")
	return task, nil
}

func (s *taskServiceImpl) CarryForward(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	source, err := s.getTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	fresh := migration.CarryForward(source, time.Now())

	const insertCopyQuery = `
INSERT INTO tasks (id,
                   owner_id,
                   content,
                   signifier,
                   status,
                   due_date,
                   priority,
                   tags,
                   is_backlog,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertCopyQuery,
		fresh.ID,
		fresh.OwnerID,
		fresh.Content,
		fresh.Signifier,
		fresh.Status,
		fresh.DueDate,
		fresh.Priority,
		fresh.Tags,
		fresh.IsBacklog,
		fresh.CreatedAt,
		fresh.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("source_id", source.ID).
			Msg("failed to insert carried task")
		return nil, err
	}

	s.logger.Info().
		Str("source_id", source.ID).
		Str("task_id", fresh.ID).
		Msg("carried task forward")
	return fresh, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Subtask cleanup is idempotent; only the root task must exist.
	const deleteSubtasksQuery = `
DELETE FROM tasks
WHERE parent_id = $1 AND owner_id = $2
`
	_, err = tx.Exec(ctx, deleteSubtasksQuery, taskID, ownerID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete subtasks")
		return err
	}

	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND owner_id = $2
`
	tag, err := tx.Exec(ctx, deleteTaskQuery, taskID, ownerID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return err
	}

	s.logger.Info().
		Str("task_id", taskID).
		Str("owner_id", ownerID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) getTask(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	const selectTaskQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE id = $1 AND owner_id = $2
`
	row := s.pgPool.QueryRow(ctx, selectTaskQuery, taskID, ownerID)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug().
				Str("task_id", taskID).
				Str("owner_id", ownerID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to select task")
		return nil, err
	}
	return task, nil
}

// applyChange writes the full transition field set in one statement;
// the task either moves to the new state or stays exactly as it was.
func (s *taskServiceImpl) applyChange(ctx context.Context, task *models.Task, change migration.Change) error {
	const applyChangeQuery = `
UPDATE tasks
SET status = $1,
    due_date = $2,
    completed_at = $3,
    is_backlog = $4,
    updated_at = $5
WHERE id = $6 AND owner_id = $7
`
	tag, err := s.pgPool.Exec(
		ctx,
		applyChangeQuery,
		change.Status,
		change.DueDate,
		change.CompletedAt,
		change.IsBacklog,
		change.UpdatedAt,
		task.ID,
		task.OwnerID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to apply transition")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	change.Apply(task)
	return nil
}

func scanTask(row pgx.Row) (*models.Task, error) {
	task := new(models.Task)
	err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Content,
		&task.Signifier,
		&task.Status,
		&task.DueDate,
		&task.Priority,
		&task.Tags,
		&task.IsBacklog,
		&task.ParentID,
		&task.CompletedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}
