package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"taskhub/internal/domain"
	"taskhub/internal/usecase"

	"github.com/gin-gonic/gin"
)

type taskUsecaser interface {
	Create(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, userID, search string) ([]*domain.Task, error)
	Update(ctx context.Context, taskID, userID string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, taskID, userID string) error
}

type TaskHandler struct {
	tasks  taskUsecaser
	logger *slog.Logger
}

func NewTaskHandler(tasks taskUsecaser, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger.With("component", "task_handler")}
}

type createTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=256"`
	Description *string `json:"description"`
}

// updateTaskRequest is a partial update: nil fields are left untouched.
type updateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=256"`
	Description *string `json:"description"`
	Completed   *bool   `json:"isCompleted"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Completed   bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// POST /api/v1/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), usecase.CreateTaskInput{
		UserID:      c.GetString("userID"),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "create task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// GET /api/v1/tasks?search=
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), c.GetString("userID"), c.Query("search"))
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list tasks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		items[i] = toTaskResponse(t)
	}
	c.JSON(http.StatusOK, items)
}

// PUT /api/v1/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	taskID := c.Param("id")

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), taskID, c.GetString("userID"), domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		h.writeTaskError(c, "update task", taskID, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// DELETE /api/v1/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID := c.Param("id")

	if err := h.tasks.Delete(c.Request.Context(), taskID, c.GetString("userID")); err != nil {
		h.writeTaskError(c, "delete task", taskID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Task removed"})
}

func (h *TaskHandler) writeTaskError(c *gin.Context, op, taskID string, err error) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
	case errors.Is(err, domain.ErrTaskForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": errTaskForbidden})
	default:
		h.logger.ErrorContext(c.Request.Context(), op, "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
