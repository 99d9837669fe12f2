package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ryoptimus/DevStorm-backend/internal/models"
	"github.com/ryoptimus/DevStorm-backend/internal/policy"
	"github.com/ryoptimus/DevStorm-backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrDescriptionEmpty   = errors.New("description cannot be empty")
	ErrInvalidPriority    = errors.New("priority must be a positive integer")
	ErrInvalidTaskStatus  = errors.New("invalid task status")
	ErrNoTasksForProject  = errors.New("no tasks found for project")
)

// TaskService handles per-task operations. Every operation resolves the
// task's parent project first and requires the caller to be its owner;
// collaborators hold no task rights.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// CreateTaskInput represents input for manually adding a task to a project
type CreateTaskInput struct {
	Caller      string
	ProjectID   uint64
	Description string
	Priority    int
	Status      models.TaskStatus
}

// CreateTask adds a single task to an owned project.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrDescriptionEmpty
	}
	if input.Priority < 1 {
		return nil, ErrInvalidPriority
	}
	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidTaskStatus
	}

	if _, err := s.requireOwnedProject(input.Caller, input.ProjectID); err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID:   input.ProjectID,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      input.Status,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask returns a task to the owner of its parent project.
func (s *TaskService) GetTask(caller string, taskID uint64) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOwnedProject(caller, task.ProjectID); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasksByProject returns all tasks of an owned project in step order.
func (s *TaskService) ListTasksByProject(caller string, projectID uint64) ([]models.Task, error) {
	if _, err := s.requireOwnedProject(caller, projectID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, ErrNoTasksForProject
	}
	return tasks, nil
}

// UpdateTaskStatus moves a task between TODO, IN_PROGRESS, and DONE. No
// counter side effects: user aggregates track projects, not tasks.
func (s *TaskService) UpdateTaskStatus(caller string, taskID uint64, status models.TaskStatus) (*models.Task, error) {
	if !models.ValidTaskStatus(status) {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOwnedProject(caller, task.ProjectID); err != nil {
		return nil, err
	}

	task.Status = status
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// UpdateTaskDescription rewrites a task's description text.
func (s *TaskService) UpdateTaskDescription(caller string, taskID uint64, description string) (*models.Task, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionEmpty
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOwnedProject(caller, task.ProjectID); err != nil {
		return nil, err
	}

	task.Description = description
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a single task.
func (s *TaskService) DeleteTask(caller string, taskID uint64) error {
	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}
	if _, err := s.requireOwnedProject(caller, task.ProjectID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func (s *TaskService) findTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// requireOwnedProject resolves the parent project and enforces owner-only
// access, keeping the existence check ahead of the authorization check.
func (s *TaskService) requireOwnedProject(caller string, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if !policy.CanMutate(caller, project) {
		return nil, ErrNotProjectOwner
	}
	return project, nil
}
