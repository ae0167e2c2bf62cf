package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/veryfy/veryfy-backend/internal/app/service"
	apperrors "github.com/veryfy/veryfy-backend/internal/errors"
	"github.com/veryfy/veryfy-backend/internal/middleware"
)

type NotificationController struct {
	notificationService service.NotificationService
}

func NewNotificationController(notificationService service.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// GetNotifications lists the caller's in-app feed
// GET /api/v1/notifications?unread_only=true&page=&page_size=
func (ctrl *NotificationController) GetNotifications(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	unreadOnly := c.Query("unread_only") == "true"
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	notifications, total, unread, err := ctrl.notificationService.GetNotifications(userID, unreadOnly, page, pageSize)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         total,
		"unread_count":  unread,
	})
}

// GetUnreadCount returns the badge counter for the notification bell
// GET /api/v1/notifications/unread-count
func (ctrl *NotificationController) GetUnreadCount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	count, err := ctrl.notificationService.GetUnreadCount(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "unread count")
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// MarkAsRead marks one of the caller's notifications as read
// PUT /api/v1/notifications/:id/read
func (ctrl *NotificationController) MarkAsRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid notification ID")
		return
	}

	if err := ctrl.notificationService.MarkAsRead(notificationID, userID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			apperrors.NotFound(c, apperrors.NotificationNotFound, "Notification not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "mark notification read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllAsRead clears the caller's unread counter
// PUT /api/v1/notifications/read-all
func (ctrl *NotificationController) MarkAllAsRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	if err := ctrl.notificationService.MarkAllAsRead(userID); err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "mark all notifications read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
