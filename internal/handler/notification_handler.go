package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sgpa-dev/sgpa-api/internal/service"
	appErrors "github.com/sgpa-dev/sgpa-api/pkg/errors"
	"github.com/sgpa-dev/sgpa-api/pkg/response"
)

// NotificationHandler wires HTTP endpoints to the notification service.
type NotificationHandler struct {
	service *service.NotificationService
}

// NewNotificationHandler creates a new handler.
func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: svc}
}

// List godoc
// @Summary List the caller's notifications
// @Tags Notifications
// @Produce json
// @Param unread query bool false "Only unread notifications"
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.service.ListOwn(c.Request.Context(), unreadOnly, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notifications, nil)
}

// Push godoc
// @Summary Push a notification to a user
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body service.PushNotificationRequest true "Notification payload"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /notifications [post]
func (h *NotificationHandler) Push(c *gin.Context) {
	var req service.PushNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid notification payload"))
		return
	}

	notification, err := h.service.Push(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, notification)
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags Notifications
// @Param id path string true "Notification ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Request.Context(), c.Param("id"), true, claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// MarkUnread godoc
// @Summary Mark a notification as unread
// @Tags Notifications
// @Param id path string true "Notification ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /notifications/{id}/unread [post]
func (h *NotificationHandler) MarkUnread(c *gin.Context) {
	if err := h.service.MarkRead(c.Request.Context(), c.Param("id"), false, claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
