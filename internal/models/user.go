package models

import "time"

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Username     string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"type:varchar(254);not null" json:"email"`
	FirstName    string     `gorm:"type:varchar(150);not null" json:"first_name"`
	LastName     string     `gorm:"type:varchar(150);not null" json:"last_name"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	IsActive     bool       `gorm:"not null" json:"-"`
	IsStaff      bool       `gorm:"not null" json:"-"`
	IsSuperuser  bool       `gorm:"not null" json:"-"`
	LastLogin    *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
}
