package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"  // merchant / reporter
	RoleAdmin UserRole = "admin" // review surface access
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	BusinessName string         `gorm:"type:varchar(200)" json:"business_name,omitempty"` // legal business name, set at store submission
	BusinessType string         `gorm:"type:varchar(100)" json:"business_type,omitempty"` // e.g. LLC, Corporation, Sole Proprietorship
	Role         UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Stores []Store `gorm:"foreignKey:UserID" json:"stores,omitempty"`
}

func (User) TableName() string {
	return "users"
}
