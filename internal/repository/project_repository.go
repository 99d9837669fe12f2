package repository

import (
	"github.com/ryoptimus/DevStorm-backend/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithOwner inserts the project row and increments the owner's
// projects counter in one transaction. The counter rides with the row
// insert, not with the later task inserts: the aggregate must match the
// true row count even when task generation yields nothing.
func (r *GormProjectRepository) CreateWithOwner(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		return incrementProjects(tx, project.Owner, 1)
	})
}

// InsertTasks batch-inserts generated tasks for a project
func (r *GormProjectRepository) InsertTasks(tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.Create(&tasks).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListAll returns every project
func (r *GormProjectRepository) ListAll() ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListByOwner returns projects owned by username
func (r *GormProjectRepository) ListByOwner(username string) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Where("owner = ?", username).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateCollaborators persists the collaborator slots
func (r *GormProjectRepository) UpdateCollaborators(project *models.Project) error {
	return r.db.Model(&models.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{
			"collaborator1": project.Collaborator1,
			"collaborator2": project.Collaborator2,
		}).Error
}

// SetStatus writes the new status and adjusts the owner's
// projects_completed counter in the same transaction. Both commit or
// neither does.
func (r *GormProjectRepository) SetStatus(project *models.Project, status models.ProjectStatus, completedDelta int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Project{}).
			Where("id = ?", project.ID).
			Update("status", status).Error; err != nil {
			return err
		}
		if completedDelta != 0 {
			if err := incrementProjectsCompleted(tx, project.Owner, completedDelta); err != nil {
				return err
			}
		}
		project.Status = status
		return nil
	})
}

// DeleteCascade deletes tasks first (they reference the project), then the
// project row, then decrements the owner's counters, all in one
// transaction.
func (r *GormProjectRepository) DeleteCascade(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteProjectRows(tx, project); err != nil {
			return err
		}
		if err := incrementProjects(tx, project.Owner, -1); err != nil {
			return err
		}
		if project.Status == models.ProjectStatusComplete {
			if err := incrementProjectsCompleted(tx, project.Owner, -1); err != nil {
				return err
			}
		}
		return nil
	})
}
