package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/readstack/backend/internal/models"
	"github.com/readstack/backend/internal/query"
	"github.com/readstack/backend/internal/repositories"
	"gorm.io/gorm"
)

// NotificationHandler handles HTTP requests related to notifications
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notificationRepo}
}

// RegisterNotificationRoutes registers the notification routes, all of which
// require authentication
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.DELETE("/notifications/:id", h.DeleteNotification)
	g.GET("/notifications/preferences", h.GetPreferences)
	g.PUT("/notifications/preferences", h.UpdatePreferences)
}

// GetNotifications lists the caller's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID := getUserIDFromContext(c)

	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"errors": echo.Map{"page": "must be a positive integer"}})
		}
		page = parsed
	}

	notifications, total, err := h.notificationRepository.GetByRecipientID(userID, page, query.PageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":         total,
		"page":          page,
		"notifications": notifications,
	})
}

// GetUnreadCount returns how many of the caller's notifications are unread
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notificationRepository.GetUnreadCount(getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

// MarkAsRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.notificationRepository.MarkAsRead(getUserIDFromContext(c), notificationID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}

// MarkAllAsRead marks all of the caller's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	if err := h.notificationRepository.MarkAllAsRead(getUserIDFromContext(c)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All notifications marked as read"})
}

// DeleteNotification deletes one of the caller's notifications
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.notificationRepository.DeleteNotification(getUserIDFromContext(c), notificationID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetPreferences returns the caller's notification preferences
func (h *NotificationHandler) GetPreferences(c echo.Context) error {
	pref, err := h.notificationRepository.GetPreference(getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pref)
}

// UpdatePreferences partially updates the caller's notification preferences.
// Fields absent from the body keep their current value.
func (h *NotificationHandler) UpdatePreferences(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req models.UpdateNotificationPreferenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	pref, err := h.notificationRepository.GetPreference(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.NotifyOnFollow != nil {
		pref.NotifyOnFollow = *req.NotifyOnFollow
	}
	if req.NotifyOnLike != nil {
		pref.NotifyOnLike = *req.NotifyOnLike
	}
	if req.NotifyOnComment != nil {
		pref.NotifyOnComment = *req.NotifyOnComment
	}
	if req.EmailOnFollow != nil {
		pref.EmailOnFollow = *req.EmailOnFollow
	}
	if req.EmailOnLike != nil {
		pref.EmailOnLike = *req.EmailOnLike
	}
	if req.EmailOnComment != nil {
		pref.EmailOnComment = *req.EmailOnComment
	}

	if err := h.notificationRepository.SavePreference(pref); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pref)
}
