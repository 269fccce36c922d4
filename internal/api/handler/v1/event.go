package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventsync/eventsync-api/internal/api/handler/v1/request"
	"github.com/eventsync/eventsync-api/internal/api/handler/v1/response"
	"github.com/eventsync/eventsync-api/internal/domain"
	"github.com/eventsync/eventsync-api/internal/service"
)

type EventService interface {
	Create(ctx context.Context, event domain.Event, creator domain.User) (domain.Event, error)
	Approve(ctx context.Context, id uint) (domain.Event, error)
	Reject(ctx context.Context, id uint) (domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (domain.Event, error)
	ListAll(ctx context.Context) ([]domain.Event, error)
	ListByOrganizer(ctx context.Context, organizerID uint) ([]domain.Event, error)
	ListRegisteredByUser(ctx context.Context, userID uint) ([]domain.Event, error)
}

type EventHandler struct {
	svc  EventService
	uSvc UserService
}

func NewEventHandler(svc EventService, uSvc UserService) *EventHandler {
	return &EventHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// canManageEvent reports whether the user may edit or delete the event.
func canManageEvent(user domain.User, event domain.Event) bool {
	if user.Role == domain.RoleAdmin {
		return true
	}

	return user.Role == domain.RoleClub && user.ClubID != nil && *user.ClubID == event.OrganizerID
}

// HandleListEvents godoc
// @Summary      List events
// @Description  Lists events. ?organizer=me narrows to the caller's club, ?registered=true to events the caller registered for.
// @Tags         events
// @Produce      json
// @Param        organizer   query     string  false  "me"
// @Param        registered  query     bool    false  "only events the caller registered for"
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [get]
// @Security BearerAuth
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var events []domain.Event
	var err error

	switch {
	case ctx.Query("registered") == "true":
		events, err = h.svc.ListRegisteredByUser(ctx.Request.Context(), user.ID)
	case ctx.Query("organizer") == "me" && user.ClubID != nil:
		events, err = h.svc.ListByOrganizer(ctx.Request.Context(), *user.ClubID)
	default:
		events, err = h.svc.ListAll(ctx.Request.Context())
	}

	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	event, err := h.svc.GetByID(ctx.Request.Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Description  Club events start pending admin approval. Admin events are published immediately.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateEventRequest  true  "Event details"
// @Success      201      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleAdmin && (user.Role != domain.RoleClub || user.ClubID == nil) {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot create events", user.ID)))
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event := domain.Event{
		Title:                 req.Title,
		Description:           req.Description,
		Location:              req.Location,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		RegistrationStartDate: req.RegistrationStartDate,
		RegistrationDeadline:  req.RegistrationDeadline,
		Capacity:              req.Capacity,
		EventType:             domain.EventType(req.EventType),
		EventFee:              req.EventFee,
		UpiID:                 req.UpiID,
		Tags:                  req.Tags,
	}

	created, err := h.svc.Create(ctx.Request.Context(), event, user)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Description  Only the organizing club or an admin may edit. Organizer and event type are immutable.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                         true  "Event ID"
// @Param        request  body      request.UpdateEventRequest  true  "Event details"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [patch]
// @Security BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	event, err := h.svc.GetByID(ctx.Request.Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.GetByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if !canManageEvent(user, event) {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot edit event %v", user.ID, eventID)))
		return
	}

	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Location = req.Location
	event.StartDate = req.StartDate
	event.EndDate = req.EndDate
	event.RegistrationStartDate = req.RegistrationStartDate
	event.RegistrationDeadline = req.RegistrationDeadline
	event.Capacity = req.Capacity
	event.Tags = req.Tags

	updated, err := h.svc.Update(ctx.Request.Context(), event)
	if err != nil {
		if errors.Is(err, service.ErrCapacityBelowRegistered) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrCapacityBelowRegistered))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteEvent godoc
// @Summary      Delete an event
// @Description  Removes the event and all of its registrations.
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [delete]
// @Security BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	event, err := h.svc.GetByID(ctx.Request.Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteEvent -> h.svc.GetByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if !canManageEvent(user, event) {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot delete event %v", user.ID, eventID)))
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), uint(eventID)); err != nil {
		err = fmt.Errorf("v1.HandleDeleteEvent -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleApproveEvent godoc
// @Summary      Approve a pending event
// @Description  Admin only. Publishes the event and emails every student an announcement.
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/approve [post]
// @Security BearerAuth
func (h *EventHandler) HandleApproveEvent(ctx *gin.Context) {
	h.handleReview(ctx, true)
}

// HandleRejectEvent godoc
// @Summary      Reject a pending event
// @Description  Admin only.
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/reject [post]
// @Security BearerAuth
func (h *EventHandler) HandleRejectEvent(ctx *gin.Context) {
	h.handleReview(ctx, false)
}

func (h *EventHandler) handleReview(ctx *gin.Context, approve bool) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	var event domain.Event
	if approve {
		event, err = h.svc.Approve(ctx.Request.Context(), uint(eventID))
	} else {
		event, err = h.svc.Reject(ctx.Request.Context(), uint(eventID))
	}
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.handleReview -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}
