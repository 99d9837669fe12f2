package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ryoptimus/DevStorm-backend/internal/dto"
	apierrors "github.com/ryoptimus/DevStorm-backend/internal/errors"
	"github.com/ryoptimus/DevStorm-backend/internal/middleware"
	"github.com/ryoptimus/DevStorm-backend/internal/models"
	"github.com/ryoptimus/DevStorm-backend/internal/services"
)

// TaskHandler serves the per-task endpoints. Every operation is owner-only;
// authorization rides on the task's parent project.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasksByProject returns a project's tasks in priority order.
func (h *TaskHandler) ListTasksByProject(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	pid, ok := parseIDParam(c, "pid")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasksByProject(username, pid)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask adds a task to a project the caller owns.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		ProjectID   uint64 `json:"pid" binding:"required"`
		Description string `json:"description" binding:"required"`
		Priority    int    `json:"priority" binding:"required"`
		Status      string `json:"status"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Caller:      username,
		ProjectID:   req.ProjectID,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      models.TaskStatus(req.Status),
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// GetTask returns one task.
func (h *TaskHandler) GetTask(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(username, id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTaskStatus moves a task through TODO / IN_PROGRESS / DONE.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTaskStatus(username, id, models.TaskStatus(req.Status))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task status updated successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// UpdateTaskDescription rewrites a task's description.
func (h *TaskHandler) UpdateTaskDescription(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateDescriptionRequest struct {
		Description string `json:"description" binding:"required"`
	}

	var req UpdateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTaskDescription(username, id, req.Description)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task description updated successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// DeleteTask removes one task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(username, id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrNoTasksForProject):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotProjectOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrDescriptionEmpty),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidTaskStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
