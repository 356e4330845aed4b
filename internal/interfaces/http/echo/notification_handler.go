package echo

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	app "github.com/orgstack/orgstack/internal/application/notification"
)

type NotificationHandler struct {
	list        app.ListNotifications
	markRead    app.MarkRead
	markAllRead app.MarkAllRead
	remove      app.DeleteNotification
	removeAll   app.DeleteAllNotifications
}

func NewNotificationHandler(list app.ListNotifications, markRead app.MarkRead, markAllRead app.MarkAllRead, remove app.DeleteNotification, removeAll app.DeleteAllNotifications) *NotificationHandler {
	return &NotificationHandler{
		list:        list,
		markRead:    markRead,
		markAllRead: markAllRead,
		remove:      remove,
		removeAll:   removeAll,
	}
}

func (h *NotificationHandler) List(c echo.Context) error {
	out, err := h.list.Execute(c.Request().Context(), app.ListNotificationsInput{
		RecipientID: currentUser(c).ID,
		Filter:      c.QueryParam("filter"),
		Limit:       queryInt(c, "limit"),
		Offset:      queryInt(c, "offset"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidFilter) {
			return badRequest(c, "invalid_filter", "filter must be all, unread or read")
		}
		return internalError(c, "failed to list notifications")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid_notification_id", "id must be a number")
	}

	if err := h.markRead.Execute(c.Request().Context(), currentUser(c).ID, notificationID); err != nil {
		if errors.Is(err, app.ErrNotificationNotFound) {
			return notFound(c, "notification not found")
		}
		return internalError(c, "failed to mark notification read")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.markAllRead.Execute(c.Request().Context(), currentUser(c).ID); err != nil {
		return internalError(c, "failed to mark notifications read")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandler) Delete(c echo.Context) error {
	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid_notification_id", "id must be a number")
	}

	if err := h.remove.Execute(c.Request().Context(), currentUser(c).ID, notificationID); err != nil {
		if errors.Is(err, app.ErrNotificationNotFound) {
			return notFound(c, "notification not found")
		}
		return internalError(c, "failed to delete notification")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandler) DeleteAll(c echo.Context) error {
	if err := h.removeAll.Execute(c.Request().Context(), currentUser(c).ID); err != nil {
		return internalError(c, "failed to delete notifications")
	}
	return c.NoContent(http.StatusNoContent)
}
