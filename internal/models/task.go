package models

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Task is a to-do item derived from one of its project's plan steps.
// Priority is the 1-based index of that step; several tasks may share a
// priority. Tasks have no lifecycle of their own: they are batch-created
// with the project and destroyed with it.
type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	ProjectID   uint64     `gorm:"not null;index" json:"project_id"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Priority    int        `gorm:"not null" json:"priority"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'TODO'" json:"status"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

// ValidTaskStatus reports whether s is one of the three task states.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}
