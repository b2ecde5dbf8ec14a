package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// NotificationsController serves per-user notifications and the admin
// broadcast endpoint.
type NotificationsController struct {
	notifications NotificationStore
	auditor       Auditor
}

func NewNotificationsController(notifications NotificationStore, auditor Auditor) *NotificationsController {
	return &NotificationsController{notifications: notifications, auditor: auditor}
}

// List returns the user's notifications, broadcasts included.
func (controller *NotificationsController) List(c *gin.Context) {
	notifications, err := controller.notifications.GetForUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "count": len(notifications)})
}

// MarkRead stamps a notification as read. The first read timestamp is
// kept on repeated calls.
func (controller *NotificationsController) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.notifications.MarkRead(id); err != nil {
		respondInternalError(c, err, "mark notification read")
		return
	}
	respondSuccess(c, "notification marked as read")
}

type sendNotificationRequest struct {
	UserID uint   `json:"user_id"` // 0 broadcasts to everyone
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body"`
}

// Send creates a notification for one user or broadcasts it. Admin only.
func (controller *NotificationsController) Send(c *gin.Context) {
	var req sendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	notification := &entities.Notification{
		UserID: req.UserID,
		Title:  req.Title,
		Body:   req.Body,
	}
	if err := controller.notifications.Create(notification); err != nil {
		controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventNotification, "send", req.Title, 0, err)
		respondInternalError(c, err, "send notification")
		return
	}

	controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventNotification, "send", req.Title, notification.ID, nil)
	respondCreated(c, notification)
}

// ListAll returns every notification in the system. Admin only.
func (controller *NotificationsController) ListAll(c *gin.Context) {
	notifications, err := controller.notifications.GetAll()
	if err != nil {
		respondInternalError(c, err, "list all notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "count": len(notifications)})
}

// Delete removes a notification. Admin only.
func (controller *NotificationsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.notifications.Delete(id); err != nil {
		controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventNotification, "delete", "", id, err)
		respondInternalError(c, err, "delete notification")
		return
	}

	controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventNotification, "delete", "", id, nil)
	respondSuccess(c, "notification deleted")
}
