package repository

import (
	"github.com/ryoptimus/DevStorm-backend/internal/models"
)

// UserRepository defines the interface for user data access, including the
// counter-maintenance contract consumed by the project service.
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List returns all users
	List() ([]models.User, error)

	// UpdatePasswordHash replaces the stored credential for a user
	UpdatePasswordHash(username, hash string) error

	// Confirm marks the account confirmed, recording the timestamp once
	Confirm(username string) error

	// IncrementProjects adjusts the owned-project counter by delta
	IncrementProjects(username string, delta int) error

	// IncrementProjectsCompleted adjusts the completed-project counter by delta
	IncrementProjectsCompleted(username string, delta int) error

	// DeleteCascade removes the account in one transaction: owned projects
	// are deleted with their tasks and collaborator slots referencing the
	// account on other projects are cleared.
	DeleteCascade(user *models.User) error
}

// ProjectRepository defines the interface for project data access. Methods
// that touch counters run the row mutation and the counter adjustment in a
// single transaction.
type ProjectRepository interface {
	// CreateWithOwner inserts the project row and increments the owner's
	// projects counter atomically.
	CreateWithOwner(project *models.Project) error

	// InsertTasks batch-inserts generated tasks for a project
	InsertTasks(tasks []models.Task) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListAll returns every project
	ListAll() ([]models.Project, error)

	// ListByOwner returns projects owned by username
	ListByOwner(username string) ([]models.Project, error)

	// UpdateCollaborators persists the collaborator slots
	UpdateCollaborators(project *models.Project) error

	// SetStatus writes the new status and adjusts the owner's
	// projects_completed counter by completedDelta atomically.
	SetStatus(project *models.Project, status models.ProjectStatus, completedDelta int) error

	// DeleteCascade deletes the project's tasks, the project row, and
	// decrements the owner's counters in one transaction.
	DeleteCascade(project *models.Project) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// ListByProject returns all tasks belonging to a project
	ListByProject(projectID uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task
	Delete(id uint64) error
}
