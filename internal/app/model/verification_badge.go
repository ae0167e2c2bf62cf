package model

import (
	"time"
)

type BadgeType string

const (
	BadgeTopbar BadgeType = "topbar"
	BadgeFooter BadgeType = "footer"
)

// Valid reports whether t is a known badge variant.
func (t BadgeType) Valid() bool {
	return t == BadgeTopbar || t == BadgeFooter
}

// DefaultBadgeTypes are the variants minted automatically on approval.
var DefaultBadgeTypes = []BadgeType{BadgeTopbar, BadgeFooter}

// VerificationBadge is an issued trust credential. Badges exist only for
// verified stores, are created by the issuance service, and are immutable
// afterwards; there is no update or delete path.
type VerificationBadge struct {
	ID      uint  `gorm:"primarykey" json:"id"`
	StoreID uint  `gorm:"not null;index:idx_badge_store_type,unique" json:"store_id"`
	Store   Store `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	BadgeType          BadgeType `gorm:"type:varchar(20);not null;index:idx_badge_store_type,unique" json:"badge_type"`
	RegistrationNumber string    `gorm:"type:varchar(30);not null;uniqueIndex" json:"registration_number"` // e.g. VF-2026-K7Q2M4XR

	CreatedAt time.Time `json:"created_at"`
}

func (VerificationBadge) TableName() string {
	return "verification_badges"
}
