package models

import "time"

// Worker is a staffable resource that tasks can be assigned to.
type Worker struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	OwnerID      uint64    `gorm:"not null;index:idx_workers_owner_name,priority:1" json:"-"`
	Name         string    `gorm:"type:varchar(255);not null;index:idx_workers_owner_name,priority:2" json:"name"`
	Skills       *string   `gorm:"type:text" json:"skills"`
	Availability *string   `gorm:"type:varchar(100)" json:"availability"`
	ContactEmail *string   `gorm:"type:varchar(254)" json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (w *Worker) SetOwner(ownerID uint64) { w.OwnerID = ownerID }
