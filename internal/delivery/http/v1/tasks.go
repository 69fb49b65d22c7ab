package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bujotrack/bujotrack/internal/migration"
	"github.com/bujotrack/bujotrack/internal/models"
	"github.com/bujotrack/bujotrack/internal/services"
)

type taskResponse struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	Signifier   string     `json:"signifier"`
	Symbol      string     `json:"symbol"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    int        `json:"priority,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	IsBacklog   bool       `json:"is_backlog"`
	ParentID    *string    `json:"parent_id,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Content:     task.Content,
		Signifier:   string(task.Signifier),
		Symbol:      task.Signifier.Symbol(),
		Status:      string(task.Status),
		DueDate:     task.DueDate,
		Priority:    task.Priority,
		Tags:        task.Tags,
		IsBacklog:   task.IsBacklog,
		ParentID:    task.ParentID,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func newTaskListResponse(tasks []*models.Task) []taskResponse {
	response := make([]taskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newTaskResponse(task)
	}
	return response
}

type createTaskRequest struct {
	Content   string     `json:"content" binding:"required,max=1024"`
	Signifier string     `json:"signifier,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Priority  int        `json:"priority,omitempty" binding:"omitempty,min=1,max=3"`
	Tags      []string   `json:"tags,omitempty"`
	IsBacklog bool       `json:"is_backlog,omitempty"`
	ParentID  *string    `json:"parent_id,omitempty"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		OwnerID:   ownerID,
		Content:   req.Content,
		Signifier: models.Signifier(req.Signifier),
		DueDate:   req.DueDate,
		Priority:  req.Priority,
		Tags:      req.Tags,
		IsBacklog: req.IsBacklog,
		ParentID:  req.ParentID,
	})
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

type getTaskResponse struct {
	taskResponse
	Subtasks []taskResponse `json:"subtasks"`
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	task, subtasks, err := h.tasks.GetTask(c, ownerID, c.Param("id"))
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, getTaskResponse{
		taskResponse: newTaskResponse(task),
		Subtasks:     newTaskListResponse(subtasks),
	})
}

type updateTaskRequest struct {
	Content   *string    `json:"content,omitempty"`
	Signifier *string    `json:"signifier,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	ClearDue  bool       `json:"clear_due,omitempty"`
	Priority  *int       `json:"priority,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	params := services.UpdateTaskParams{
		OwnerID:  ownerID,
		TaskID:   c.Param("id"),
		Content:  req.Content,
		DueDate:  req.DueDate,
		ClearDue: req.ClearDue,
		Priority: req.Priority,
		Tags:     req.Tags,
	}
	if req.Signifier != nil {
		signifier := models.Signifier(*req.Signifier)
		params.Signifier = &signifier
	}

	task, err := h.tasks.UpdateTask(c, params)
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleToggleComplete(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	task, err := h.tasks.ToggleComplete(c, ownerID, c.Param("id"))
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleMigrateToBacklog(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	task, err := h.tasks.MigrateToBacklog(c, ownerID, c.Param("id"))
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

type migrateToFutureRequest struct {
	TargetDate *time.Time `json:"target_date"`
}

func (h *handlerImpl) HandleMigrateToFuture(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req migrateToFutureRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.MigrateToFuture(c, ownerID, c.Param("id"), req.TargetDate)
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleCarryForward(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	task, err := h.tasks.CarryForward(c, ownerID, c.Param("id"))
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	err := h.tasks.DeleteTask(c, ownerID, c.Param("id"))
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) abortTaskError(c *gin.Context, err error) {
	h.logger.Error().
		Err(err).
		Msg("task operation failed")
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
	case errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidSignifier),
		errors.Is(err, migration.ErrMissingTargetDate):
		abort(c, newUnprocessableError(err.Error()))
	default:
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
