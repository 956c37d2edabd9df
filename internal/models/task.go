package models

import (
	"time"

	"gorm.io/datatypes"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
)

// TaskStatuses lists every valid status in display order.
var TaskStatuses = []TaskStatus{
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusDone,
	TaskStatusBlocked,
}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Task struct {
	ID      uint64 `gorm:"primarykey" json:"id"`
	OwnerID uint64 `gorm:"not null;index:idx_tasks_owner_status,priority:1;index:idx_tasks_owner_due_date,priority:1;index:idx_tasks_owner_created_at,priority:1;index:idx_tasks_owner_updated_at,priority:1" json:"-"`
	// Description is an ordered list of rich-text blocks.
	Description      datatypes.JSON `gorm:"not null" json:"description"`
	DueDate          *time.Time     `gorm:"type:date;index:idx_tasks_owner_due_date,priority:2" json:"due_date"`
	Status           TaskStatus     `gorm:"type:varchar(20);not null;default:'TODO';index:idx_tasks_owner_status,priority:2" json:"status"`
	Notes            *string        `gorm:"type:text" json:"notes"`
	ClientID         *uint64        `gorm:"index" json:"-"`
	AssignedWorkerID *uint64        `gorm:"index" json:"-"`
	CreatedAt        time.Time      `gorm:"index:idx_tasks_owner_created_at,priority:2" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"index:idx_tasks_owner_updated_at,priority:2" json:"updated_at"`

	// Relations
	Owner          *User   `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Client         *Client `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"client"`
	AssignedWorker *Worker `gorm:"foreignKey:AssignedWorkerID;constraint:OnDelete:SET NULL" json:"assigned_worker"`
}

func (t *Task) SetOwner(ownerID uint64) { t.OwnerID = ownerID }
