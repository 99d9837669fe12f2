package models

import "time"

type Membership string

const (
	MembershipStandard Membership = "STANDARD"
	MembershipPremium  Membership = "PREMIUM"
)

// User carries the account record plus the derived project aggregates.
// Projects and ProjectsCompleted always equal the true count of owned
// project rows (respectively, owned rows with status COMPLETE); every
// project-lifecycle mutation adjusts them in the same transaction.
type User struct {
	ID                uint64     `gorm:"primarykey" json:"id"`
	Email             string     `gorm:"type:varchar(320);uniqueIndex;not null" json:"email"`
	Username          string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash      string     `gorm:"type:varchar(60);not null" json:"-"`
	Membership        Membership `gorm:"type:varchar(8);not null;default:'STANDARD'" json:"membership"`
	Confirmed         bool       `gorm:"not null;default:false" json:"confirmed"`
	ConfirmedOn       *time.Time `json:"confirmed_on"`
	Projects          int        `gorm:"not null;default:0" json:"projects"`
	ProjectsCompleted int        `gorm:"not null;default:0" json:"projects_completed"`
	DateJoined        time.Time  `json:"date_joined"`
	Bio               *string    `gorm:"type:varchar(500)" json:"bio"`

	// Relations
	OwnedProjects []Project `gorm:"foreignKey:Owner;references:Username" json:"-"`
}
