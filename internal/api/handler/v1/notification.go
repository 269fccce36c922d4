package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventsync/eventsync-api/internal/api/handler/v1/response"
	"github.com/eventsync/eventsync-api/internal/domain"
	"github.com/eventsync/eventsync-api/internal/service"
)

type NotificationService interface {
	ListByUser(ctx context.Context, userID uint) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type NotificationHandler struct {
	svc  NotificationService
	uSvc UserService
}

func NewNotificationHandler(svc NotificationService, uSvc UserService) *NotificationHandler {
	return &NotificationHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListNotifications godoc
// @Summary      List the caller's notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {array}   domain.Notification
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /notifications [get]
// @Security BearerAuth
func (h *NotificationHandler) HandleListNotifications(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	notifications, err := h.svc.ListByUser(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListNotifications -> h.svc.ListByUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	unread, err := h.svc.CountUnread(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListNotifications -> h.svc.CountUnread -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

// HandleMarkRead godoc
// @Summary      Mark a notification read
// @Tags         notifications
// @Produce      json
// @Param        notificationID  path  int  true  "Notification ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /notifications/{notificationID}/read [patch]
// @Security BearerAuth
func (h *NotificationHandler) HandleMarkRead(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	notificationID, err := strconv.ParseUint(ctx.Param("notificationID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid notification ID: %w", err)))
		return
	}

	if err := h.svc.MarkRead(ctx.Request.Context(), uint(notificationID), user.ID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("notification", "ID", notificationID))
			return
		}

		err = fmt.Errorf("v1.HandleMarkRead -> h.svc.MarkRead -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "notification marked read"})
}

// HandleMarkAllRead godoc
// @Summary      Mark all of the caller's notifications read
// @Tags         notifications
// @Produce      json
// @Success      200
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /notifications/read-all [post]
// @Security BearerAuth
func (h *NotificationHandler) HandleMarkAllRead(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.MarkAllRead(ctx.Request.Context(), user.ID); err != nil {
		err = fmt.Errorf("v1.HandleMarkAllRead -> h.svc.MarkAllRead -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "all notifications marked read"})
}
