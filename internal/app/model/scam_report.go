package model

import (
	"time"

	"gorm.io/gorm"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewed  ReportStatus = "reviewed"
	ReportDismissed ReportStatus = "dismissed"
)

// Valid reports whether s is a known report state.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportReviewed, ReportDismissed:
		return true
	}
	return false
}

// ScamReport is a user-filed accusation against a buyer. It triggers exactly
// one notification fan-out at creation time; later status changes by an admin
// never re-notify.
type ScamReport struct {
	ID         uint  `gorm:"primarykey" json:"id"`
	ReporterID uint  `gorm:"not null;index" json:"reporter_id"`
	Reporter   *User `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`

	ReportedEmail string       `gorm:"type:varchar(255);not null;index" json:"reported_email"`
	Description   string       `gorm:"type:text;not null" json:"description"`
	EvidenceURL   string       `gorm:"type:text" json:"evidence_url,omitempty"` // object-storage URL
	Status        ReportStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ReviewedBy    *uint        `json:"reviewed_by,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ScamReport) TableName() string {
	return "scam_reports"
}
