package repository

import (
	"github.com/veryfy/veryfy-backend/internal/app/model"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	FindByUserID(userID uint, unreadOnly bool, limit, offset int) ([]model.Notification, int64, error)
	CountUnread(userID uint) (int64, error)
	MarkAsRead(id, userID uint) error
	MarkAllAsRead(userID uint) error
	CreateDispatch(dispatch *model.NotificationDispatch) error
	FindDispatchByReportID(reportID uint) (*model.NotificationDispatch, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) FindByUserID(userID uint, unreadOnly bool, limit, offset int) ([]model.Notification, int64, error) {
	query := r.db.Model(&model.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var notifications []model.Notification
	err := query.Order("created_at DESC").Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead scopes the update to the owner so one user cannot touch
// another's feed.
func (r *notificationRepository) MarkAsRead(id, userID uint) error {
	result := r.db.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(userID uint) error {
	return r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *notificationRepository) CreateDispatch(dispatch *model.NotificationDispatch) error {
	return r.db.Create(dispatch).Error
}

func (r *notificationRepository) FindDispatchByReportID(reportID uint) (*model.NotificationDispatch, error) {
	var dispatch model.NotificationDispatch
	err := r.db.
		Where("scam_report_id = ?", reportID).
		Order("created_at DESC").
		First(&dispatch).Error
	if err != nil {
		return nil, err
	}
	return &dispatch, nil
}
