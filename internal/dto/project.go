package dto

import (
	"time"

	"github.com/ryoptimus/DevStorm-backend/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID            uint64               `json:"id"`
	Owner         string               `json:"owner"`
	Collaborator1 *string              `json:"collaborator1"`
	Collaborator2 *string              `json:"collaborator2"`
	Title         string               `json:"title"`
	Summary       string               `json:"summary"`
	Steps         []string             `json:"steps"`
	Languages     []string             `json:"languages"`
	Status        models.ProjectStatus `json:"status"`
	DateCreated   time.Time            `json:"date_created"`
	Tasks         []TaskDTO            `json:"tasks,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	ProjectID   uint64            `json:"project_id"`
	Description string            `json:"description"`
	Priority    int               `json:"priority"`
	Status      models.TaskStatus `json:"status"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:            project.ID,
		Owner:         project.Owner,
		Collaborator1: project.Collaborator1,
		Collaborator2: project.Collaborator2,
		Title:         project.Title,
		Summary:       project.Summary,
		Steps:         project.Steps,
		Languages:     project.Languages,
		Status:        project.Status,
		DateCreated:   project.DateCreated,
	}

	if len(project.Tasks) > 0 {
		dto.Tasks = ToTaskDTOs(project.Tasks)
	}

	return dto
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project)
	}
	return dtos
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      task.Status,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
