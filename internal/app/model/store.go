package model

import (
	"time"

	"gorm.io/gorm"
)

// VerificationStatus is the tri-state lifecycle flag shared by stores and documents.
type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"  // awaiting admin review
	StatusVerified VerificationStatus = "verified" // approved
	StatusRejected VerificationStatus = "rejected" // declined
)

// Valid reports whether s is one of the known lifecycle states.
func (s VerificationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s is a review outcome. Once a store reaches a
// terminal state, only an explicit admin action can touch it again.
func (s VerificationStatus) Terminal() bool {
	return s == StatusVerified || s == StatusRejected
}

type Store struct {
	ID     uint `gorm:"primarykey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"` // owning merchant
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"owner,omitempty"`

	Name         string `gorm:"not null" json:"name"`
	URL          string `gorm:"type:text;not null" json:"url"`
	LogoURL      string `gorm:"type:text" json:"logo_url,omitempty"`
	ContactEmail string `gorm:"type:varchar(255)" json:"contact_email,omitempty"` // scam-alert recipient

	VerificationStatus VerificationStatus `gorm:"type:varchar(20);default:'pending';index" json:"verification_status"`
	VerifiedAt         *time.Time         `json:"verified_at,omitempty"`
	ReviewedBy         *uint              `json:"reviewed_by,omitempty"` // admin who decided
	RejectionReason    string             `gorm:"type:text" json:"rejection_reason,omitempty"`

	Documents []VerificationDocument `gorm:"foreignKey:StoreID" json:"documents,omitempty"`
	Badges    []VerificationBadge    `gorm:"foreignKey:StoreID" json:"badges,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Store) TableName() string {
	return "stores"
}
