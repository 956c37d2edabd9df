package models

import "time"

// Client is a customer of the owning user.
type Client struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	OwnerID      uint64    `gorm:"not null;index:idx_clients_owner_created_at,priority:1" json:"-"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	ContactEmail *string   `gorm:"type:varchar(254)" json:"contact_email"`
	Phone        *string   `gorm:"type:varchar(50)" json:"phone"`
	Notes        *string   `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time `gorm:"index:idx_clients_owner_created_at,priority:2" json:"created_at"`

	// Relations
	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Client) SetOwner(ownerID uint64) { c.OwnerID = ownerID }
