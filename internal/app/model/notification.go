package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeScamAlert     NotificationType = "scam_alert"
	NotificationTypeStoreVerified NotificationType = "store_verified"
	NotificationTypeStoreRejected NotificationType = "store_rejected"
)

// Notification is the in-app copy of an alert delivered to a store owner.
// Email remains the primary channel; this record backs the dashboard feed.
type Notification struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Type    NotificationType `gorm:"type:varchar(50);not null;index" json:"type"`
	Title   string           `gorm:"type:text;not null" json:"title"`
	Content string           `gorm:"type:text;not null" json:"content"`

	IsRead bool `gorm:"default:false;index" json:"is_read"`

	RelatedReportID *uint `gorm:"index" json:"related_report_id,omitempty"`
	RelatedStoreID  *uint `gorm:"index" json:"related_store_id,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationDispatch summarizes one scam-alert fan-out run. Delivery
// failures are recorded here instead of failing the report submission.
type NotificationDispatch struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ScamReportID uint        `gorm:"not null;index" json:"scam_report_id"`
	ScamReport   *ScamReport `gorm:"foreignKey:ScamReportID" json:"-"`

	AttemptedCount   int            `gorm:"not null" json:"attempted_count"`
	DeliveredCount   int            `gorm:"not null" json:"delivered_count"`
	FailedRecipients pq.StringArray `gorm:"type:text[];default:'{}';not null" json:"failed_recipients"`
}

func (NotificationDispatch) TableName() string {
	return "notification_dispatches"
}
