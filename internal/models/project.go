package models

import (
	"time"

	"gorm.io/datatypes"
)

type ProjectStatus string

const (
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusComplete   ProjectStatus = "COMPLETE"
)

// Project is owned by exactly one user and holds up to two collaborator
// slots. Slots are weak references: they are validated against the users
// table at write time and cleared (not cascade-deleted) when the referenced
// account is removed. Slot1 fills before slot2; order carries no meaning
// beyond insertion order.
type Project struct {
	ID            uint64                      `gorm:"primarykey" json:"id"`
	Owner         string                      `gorm:"type:varchar(50);not null;index" json:"owner"`
	Collaborator1 *string                     `gorm:"type:varchar(50)" json:"collaborator1"`
	Collaborator2 *string                     `gorm:"type:varchar(50)" json:"collaborator2"`
	Title         string                      `gorm:"type:varchar(100);not null" json:"title"`
	Summary       string                      `gorm:"type:varchar(255)" json:"summary"`
	Steps         datatypes.JSONSlice[string] `json:"steps"`
	Languages     datatypes.JSONSlice[string] `json:"languages"`
	Status        ProjectStatus               `gorm:"type:varchar(20);not null;default:'IN_PROGRESS'" json:"status"`
	DateCreated   time.Time                   `json:"date_created"`

	// Relations
	Tasks []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

// HasCollaborator reports whether username occupies either slot.
func (p *Project) HasCollaborator(username string) bool {
	if p.Collaborator1 != nil && *p.Collaborator1 == username {
		return true
	}
	if p.Collaborator2 != nil && *p.Collaborator2 == username {
		return true
	}
	return false
}
