package service

import (
	"errors"

	"github.com/veryfy/veryfy-backend/internal/app/model"
	"github.com/veryfy/veryfy-backend/internal/app/repository"
	"github.com/veryfy/veryfy-backend/internal/websocket"
	"github.com/veryfy/veryfy-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService interface {
	Notify(userID uint, notifType model.NotificationType, title, content string, relatedReportID, relatedStoreID *uint) (*model.Notification, error)
	GetNotifications(userID uint, unreadOnly bool, page, pageSize int) ([]model.Notification, int64, int64, error)
	GetUnreadCount(userID uint) (int64, error)
	MarkAsRead(notificationID, userID uint) error
	MarkAllAsRead(userID uint) error
}

type notificationService struct {
	repo repository.NotificationRepository
	hub  *websocket.Hub
}

// NewNotificationService creates the in-app feed service. hub may be nil in
// tests; pushes are then skipped.
func NewNotificationService(repo repository.NotificationRepository, hub *websocket.Hub) NotificationService {
	return &notificationService{
		repo: repo,
		hub:  hub,
	}
}

// Notify writes a feed entry and pushes it to any live dashboard session.
func (s *notificationService) Notify(
	userID uint,
	notifType model.NotificationType,
	title, content string,
	relatedReportID, relatedStoreID *uint,
) (*model.Notification, error) {
	notification := &model.Notification{
		UserID:          userID,
		Type:            notifType,
		Title:           title,
		Content:         content,
		IsRead:          false,
		RelatedReportID: relatedReportID,
		RelatedStoreID:  relatedStoreID,
	}

	if err := s.repo.Create(notification); err != nil {
		logger.Error("Failed to create notification", err, map[string]interface{}{
			"user_id": userID,
			"type":    string(notifType),
		})
		return nil, err
	}

	if s.hub != nil {
		unreadCount, _ := s.repo.CountUnread(userID)
		s.hub.SendToUser(userID, websocket.PushMessage{
			Type: string(notifType),
			Payload: map[string]interface{}{
				"notification": notification,
				"unread_count": unreadCount,
			},
		})
	}

	return notification, nil
}

func (s *notificationService) GetNotifications(userID uint, unreadOnly bool, page, pageSize int) ([]model.Notification, int64, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	notifications, total, err := s.repo.FindByUserID(userID, unreadOnly, pageSize, offset)
	if err != nil {
		return nil, 0, 0, err
	}

	unreadCount, err := s.repo.CountUnread(userID)
	if err != nil {
		return nil, 0, 0, err
	}

	return notifications, total, unreadCount, nil
}

func (s *notificationService) GetUnreadCount(userID uint) (int64, error) {
	return s.repo.CountUnread(userID)
}

func (s *notificationService) MarkAsRead(notificationID, userID uint) error {
	if err := s.repo.MarkAsRead(notificationID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(userID uint) error {
	return s.repo.MarkAllAsRead(userID)
}
