package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ryoptimus/DevStorm-backend/internal/logger"
	"github.com/ryoptimus/DevStorm-backend/internal/models"
	"github.com/ryoptimus/DevStorm-backend/internal/policy"
	"github.com/ryoptimus/DevStorm-backend/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound        = errors.New("project not found")
	ErrNoProjects             = errors.New("no projects found")
	ErrNotProjectOwner        = errors.New("project does not belong to user")
	ErrProjectAccessDenied    = errors.New("user has no access to this project")
	ErrProjectInProgress      = errors.New("existing project in progress")
	ErrTitleRequired          = errors.New("title is required")
	ErrCollaboratorSlotsFull  = errors.New("project already has two collaborators")
	ErrCollaboratorNotFound   = errors.New("proposed collaborator does not exist")
	ErrCollaboratorIsOwner    = errors.New("owner cannot be added as a collaborator")
	ErrCollaboratorDuplicate  = errors.New("user is already a collaborator on this project")
	ErrNoCollaborators        = errors.New("project has no collaborators to remove")
	ErrCollaboratorNotListed  = errors.New("collaborator is not listed on this project")
)

// TaskGenerator is the task-generation adapter boundary. Failures degrade
// project creation to zero tasks; they never abort it.
type TaskGenerator interface {
	GenerateTasks(ctx context.Context, title, summary string, languages, steps []string) ([]StepTasks, error)
}

// ProjectService owns the project lifecycle: creation with derived tasks,
// collaborator slots, the status toggle, deletion, and the counter
// bookkeeping on the owning user that goes with each of those.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	generator   TaskGenerator
}

// NewProjectService creates a new ProjectService. generator may be nil when
// no AI key is configured; projects are then created without tasks.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, generator TaskGenerator) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		generator:   generator,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Owner     string
	Title     string
	Summary   string
	Steps     []string
	Languages []string
}

// CreateProject inserts the project (and the owner's counter increment) in
// one transaction, then derives tasks from the plan steps via the
// generation adapter in a second transaction. The adapter call runs with no
// transaction open; its latency is unbounded and its failure is recovered
// locally.
//
// A user may hold at most one project that is not COMPLETE: creation is
// refused while projects != projects_completed.
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	user, err := s.userRepo.FindByUsername(input.Owner)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.Projects != user.ProjectsCompleted {
		return nil, ErrProjectInProgress
	}

	project := &models.Project{
		Owner:       user.Username,
		Title:       input.Title,
		Summary:     input.Summary,
		Steps:       input.Steps,
		Languages:   input.Languages,
		Status:      models.ProjectStatusInProgress,
		DateCreated: time.Now(),
	}

	if err := s.projectRepo.CreateWithOwner(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	tasks := s.generateTasks(ctx, project)
	if len(tasks) > 0 {
		if err := s.projectRepo.InsertTasks(tasks); err != nil {
			return nil, fmt.Errorf("failed to insert generated tasks: %w", err)
		}
		project.Tasks = tasks
	}

	return project, nil
}

// generateTasks calls the adapter and converts its output to task rows.
// Any failure is logged and swallowed; the project stands with zero tasks.
func (s *ProjectService) generateTasks(ctx context.Context, project *models.Project) []models.Task {
	if s.generator == nil || len(project.Steps) == 0 {
		return nil
	}

	stepTasks, err := s.generator.GenerateTasks(ctx, project.Title, project.Summary, project.Languages, project.Steps)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"project_id": project.ID,
			"owner":      project.Owner,
		}).WithError(err).Warn("task generation failed, project created without tasks")
		return nil
	}

	var tasks []models.Task
	for _, st := range stepTasks {
		if st.StepIndex < 1 || st.StepIndex > len(project.Steps) {
			continue
		}
		for _, description := range st.Tasks {
			if strings.TrimSpace(description) == "" {
				continue
			}
			tasks = append(tasks, models.Task{
				ProjectID:   project.ID,
				Description: description,
				Priority:    st.StepIndex,
				Status:      models.TaskStatusTodo,
			})
		}
	}
	return tasks
}

// GetProject returns a project to its owner or a listed collaborator.
// Existence is checked before authorization so a missing id is NotFound and
// a foreign one is Forbidden, never the other way around.
func (s *ProjectService) GetProject(caller string, id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, "Tasks")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !policy.CanView(caller, project) {
		return nil, ErrProjectAccessDenied
	}

	return project, nil
}

// ListAllProjects returns every project. Mirrors the public listing
// endpoint: no projects at all is reported as ErrNoProjects.
func (s *ProjectService) ListAllProjects() ([]models.Project, error) {
	projects, err := s.projectRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if len(projects) == 0 {
		return nil, ErrNoProjects
	}
	return projects, nil
}

// ListProjectsByOwner returns the caller's owned projects; none is an empty
// slice, not an error.
func (s *ProjectService) ListProjectsByOwner(caller string) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByOwner(caller)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// AddCollaborator fills the first empty slot with an existing user. The
// owner and the occupant of the other slot are rejected, so a project never
// carries duplicate or self-referential collaborators.
func (s *ProjectService) AddCollaborator(caller string, projectID uint64, collaborator string) (*models.Project, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutate(caller, project) {
		return nil, ErrNotProjectOwner
	}

	if project.Collaborator1 != nil && project.Collaborator2 != nil {
		return nil, ErrCollaboratorSlotsFull
	}
	if collaborator == project.Owner {
		return nil, ErrCollaboratorIsOwner
	}
	if project.HasCollaborator(collaborator) {
		return nil, ErrCollaboratorDuplicate
	}

	// Referential integrity check at write time; the slot is a weak
	// reference, so a missing user surfaces here rather than as an FK error.
	if _, err := s.userRepo.FindByUsername(collaborator); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollaboratorNotFound
		}
		return nil, fmt.Errorf("failed to find collaborator: %w", err)
	}

	if project.Collaborator1 == nil {
		project.Collaborator1 = &collaborator
	} else {
		project.Collaborator2 = &collaborator
	}

	if err := s.projectRepo.UpdateCollaborators(project); err != nil {
		return nil, fmt.Errorf("failed to update collaborators: %w", err)
	}

	return project, nil
}

// RemoveCollaborator clears the slot holding the named collaborator,
// leaving the other slot untouched. "No collaborators at all" and "that
// collaborator is not listed" are distinct failures.
func (s *ProjectService) RemoveCollaborator(caller string, projectID uint64, collaborator string) (*models.Project, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutate(caller, project) {
		return nil, ErrNotProjectOwner
	}

	switch {
	case project.Collaborator1 != nil && *project.Collaborator1 == collaborator:
		project.Collaborator1 = nil
	case project.Collaborator2 != nil && *project.Collaborator2 == collaborator:
		project.Collaborator2 = nil
	case project.Collaborator1 == nil && project.Collaborator2 == nil:
		return nil, ErrNoCollaborators
	default:
		return nil, ErrCollaboratorNotListed
	}

	if err := s.projectRepo.UpdateCollaborators(project); err != nil {
		return nil, fmt.Errorf("failed to update collaborators: %w", err)
	}

	return project, nil
}

// ToggleStatus flips the project between IN_PROGRESS and COMPLETE and
// adjusts the owner's projects_completed in the same transaction.
func (s *ProjectService) ToggleStatus(caller string, projectID uint64) (*models.Project, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutate(caller, project) {
		return nil, ErrNotProjectOwner
	}

	newStatus := models.ProjectStatusComplete
	completedDelta := 1
	if project.Status == models.ProjectStatusComplete {
		newStatus = models.ProjectStatusInProgress
		completedDelta = -1
	}

	if err := s.projectRepo.SetStatus(project, newStatus, completedDelta); err != nil {
		return nil, fmt.Errorf("failed to update project status: %w", err)
	}

	return project, nil
}

// DeleteProject removes the project's tasks, the project row, and the
// owner's counter adjustments as one transaction.
func (s *ProjectService) DeleteProject(caller string, projectID uint64) error {
	project, err := s.findProject(projectID)
	if err != nil {
		return err
	}
	if !policy.CanMutate(caller, project) {
		return ErrNotProjectOwner
	}

	if err := s.projectRepo.DeleteCascade(project); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

func (s *ProjectService) findProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}
