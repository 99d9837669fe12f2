package repository

import (
	"time"

	"github.com/ryoptimus/DevStorm-backend/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdatePasswordHash replaces the stored credential for a user
func (r *GormUserRepository) UpdatePasswordHash(username, hash string) error {
	return r.db.Model(&models.User{}).
		Where("username = ?", username).
		Update("password_hash", hash).Error
}

// Confirm marks the account confirmed, recording the timestamp once
func (r *GormUserRepository) Confirm(username string) error {
	return r.db.Model(&models.User{}).
		Where("username = ? AND confirmed = ?", username, false).
		Updates(map[string]interface{}{
			"confirmed":    true,
			"confirmed_on": time.Now(),
		}).Error
}

// IncrementProjects adjusts the owned-project counter by delta
func (r *GormUserRepository) IncrementProjects(username string, delta int) error {
	return incrementProjects(r.db, username, delta)
}

// IncrementProjectsCompleted adjusts the completed-project counter by delta
func (r *GormUserRepository) IncrementProjectsCompleted(username string, delta int) error {
	return incrementProjectsCompleted(r.db, username, delta)
}

// DeleteCascade removes the account and everything hanging off it in a
// single transaction: each owned project goes through the same
// tasks-then-project deletion as a standalone project delete, and
// collaborator slots referencing the account on other users' projects are
// nulled out rather than cascade-deleted. Counters on other accounts are
// untouched: they track ownership, and ownership does not change here.
func (r *GormUserRepository) DeleteCascade(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var owned []models.Project
		if err := tx.Where("owner = ?", user.Username).Find(&owned).Error; err != nil {
			return err
		}

		for i := range owned {
			if err := deleteProjectRows(tx, &owned[i]); err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Project{}).
			Where("collaborator1 = ?", user.Username).
			Update("collaborator1", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Project{}).
			Where("collaborator2 = ?", user.Username).
			Update("collaborator2", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, user.ID).Error
	})
}

func incrementProjects(tx *gorm.DB, username string, delta int) error {
	return tx.Model(&models.User{}).
		Where("username = ?", username).
		UpdateColumn("projects", gorm.Expr("projects + ?", delta)).Error
}

func incrementProjectsCompleted(tx *gorm.DB, username string, delta int) error {
	return tx.Model(&models.User{}).
		Where("username = ?", username).
		UpdateColumn("projects_completed", gorm.Expr("projects_completed + ?", delta)).Error
}

// deleteProjectRows removes a project's tasks and then the project itself,
// without touching counters. Callers own the counter bookkeeping.
func deleteProjectRows(tx *gorm.DB, project *models.Project) error {
	if err := tx.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Project{}, project.ID).Error
}
