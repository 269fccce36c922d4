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

type RegistrationService interface {
	Register(ctx context.Context, eventID, userID uint, proof *domain.PaymentProof) (domain.Registration, error)
	Cancel(ctx context.Context, eventID, userID uint) error
	GetByID(ctx context.Context, id uint) (domain.Registration, error)
	ListByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error)
	Ticket(ctx context.Context, eventID, userID uint) (domain.Registration, []byte, error)
	VerifyPayment(ctx context.Context, registrationID uint) error
	RejectPayment(ctx context.Context, registrationID uint, reason string) error
	SetAttendance(ctx context.Context, registrationID uint, present bool) (domain.Registration, error)
	CheckInByQR(ctx context.Context, activeEventID uint, payload []byte) (service.CheckInResult, error)
}

type RegistrationHandler struct {
	svc  RegistrationService
	eSvc EventService
	uSvc UserService
}

func NewRegistrationHandler(svc RegistrationService, eSvc EventService, uSvc UserService) *RegistrationHandler {
	return &RegistrationHandler{
		svc:  svc,
		eSvc: eSvc,
		uSvc: uSvc,
	}
}

// HandleRegister godoc
// @Summary      Register for an event
// @Description  Registers the caller. Paid events require a transaction ID and a payment screenshot in the body.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                      true   "Event ID"
// @Param        request  body      request.RegisterRequest  false  "Payment proof for paid events"
// @Success      201      {object}  domain.Registration
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/register [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleRegister(ctx *gin.Context) {
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

	var req request.RegisterRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		if err := req.Validate(); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
	}

	var proof *domain.PaymentProof
	if req.TransactionID != "" || req.TransactionImage != "" {
		proof = &domain.PaymentProof{
			TransactionID:    req.TransactionID,
			TransactionImage: req.TransactionImage,
		}
	}

	reg, err := h.svc.Register(ctx.Request.Context(), uint(eventID), user.ID, proof)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyRegistered))
		case errors.Is(err, service.ErrEventFull):
			response.RenderErr(ctx, response.ErrConflict(service.ErrEventFull))
		case errors.Is(err, service.ErrEventNotOpen),
			errors.Is(err, service.ErrRegistrationNotOpen),
			errors.Is(err, service.ErrRegistrationClosed),
			errors.Is(err, service.ErrPaymentProofRequired):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, reg)
}

// HandleCancelRegistration godoc
// @Summary      Cancel a registration
// @Description  Frees the caller's slot.
// @Tags         registrations
// @Produce      json
// @Param        eventID  path  int  true  "Event ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/register [delete]
// @Security BearerAuth
func (h *RegistrationHandler) HandleCancelRegistration(ctx *gin.Context) {
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

	if err := h.svc.Cancel(ctx.Request.Context(), uint(eventID), user.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "eventID", eventID))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		default:
			err = fmt.Errorf("v1.HandleCancelRegistration -> h.svc.Cancel -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListRegistrations godoc
// @Summary      List registrations for an event
// @Description  Only the organizing club or an admin may see the attendee list.
// @Tags         registrations
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200      {array}   domain.Registration
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/registrations [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleListRegistrations(ctx *gin.Context) {
	_, event, respErr := h.loadManagedEvent(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	regs, err := h.svc.ListByEvent(ctx.Request.Context(), event.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListRegistrations -> h.svc.ListByEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, regs)
}

// HandleGetTicket godoc
// @Summary      Get the caller's ticket for an event
// @Description  Returns the QR payload to render. Pending payments have no ticket until verified.
// @Tags         registrations
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200      {object}  response.TicketResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/ticket [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleGetTicket(ctx *gin.Context) {
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

	reg, payload, err := h.svc.Ticket(ctx.Request.Context(), uint(eventID), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "eventID", eventID))
		case errors.Is(err, service.ErrPaymentNotVerified):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleGetTicket -> h.svc.Ticket -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.TicketResponse{
		Reference: reg.Reference,
		Payload:   string(payload),
	})
}

// HandleCheckIn godoc
// @Summary      Check in an attendee by QR scan
// @Description  Decodes the scanned payload and marks the registrant attended. Re-scans are reported, not re-applied.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                     true  "Event ID"
// @Param        request  body      request.CheckInRequest  true  "Scanned QR payload"
// @Success      200      {object}  response.CheckInResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/checkin [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleCheckIn(ctx *gin.Context) {
	_, event, respErr := h.loadManagedEvent(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.CheckInByQR(ctx.Request.Context(), event.ID, []byte(req.Payload))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQRPayload),
			errors.Is(err, service.ErrWrongEvent):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrUnknownRegistrant):
			response.RenderErr(ctx, response.ErrNotFound("registration", "eventID", event.ID))
		default:
			err = fmt.Errorf("v1.HandleCheckIn -> h.svc.CheckInByQR -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.CheckInResponse{
		Registration:     result.Registration,
		AlreadyCheckedIn: result.AlreadyCheckedIn,
	})
}

// HandleSetAttendance godoc
// @Summary      Set attendance manually
// @Description  Marks a registrant present or absent from the organizer dashboard.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        registrationID  path      int                        true  "Registration ID"
// @Param        request         body      request.AttendanceRequest  true  "request body"
// @Success      200             {object}  domain.Registration
// @Failure      400             {object}  response.Err
// @Failure      401             {object}  response.Err
// @Failure      403             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /registrations/{registrationID}/attendance [patch]
// @Security BearerAuth
func (h *RegistrationHandler) HandleSetAttendance(ctx *gin.Context) {
	reg, respErr := h.loadManagedRegistration(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.SetAttendance(ctx.Request.Context(), reg.ID, *req.Present)
	if err != nil {
		err = fmt.Errorf("v1.HandleSetAttendance -> h.svc.SetAttendance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleVerifyPayment godoc
// @Summary      Verify a payment
// @Description  Marks the registration's payment verified and emails the registrant their confirmation. Idempotent.
// @Tags         registrations
// @Produce      json
// @Param        registrationID  path  int  true  "Registration ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID}/payment/verify [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleVerifyPayment(ctx *gin.Context) {
	reg, respErr := h.loadManagedRegistration(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.VerifyPayment(ctx.Request.Context(), reg.ID); err != nil {
		if errors.Is(err, service.ErrNotPaidEvent) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleVerifyPayment -> h.svc.VerifyPayment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "payment verified"})
}

// HandleRejectPayment godoc
// @Summary      Reject a payment
// @Description  Removes the registration, freeing the slot, and emails the registrant the reason with the organizer's contact.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        registrationID  path      int                           true  "Registration ID"
// @Param        request         body      request.RejectPaymentRequest  true  "Rejection reason"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID}/payment/reject [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleRejectPayment(ctx *gin.Context) {
	reg, respErr := h.loadManagedRegistration(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RejectPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.RejectPayment(ctx.Request.Context(), reg.ID, req.Reason); err != nil {
		switch {
		case errors.Is(err, service.ErrRejectionReasonRequired),
			errors.Is(err, service.ErrNotPaidEvent),
			errors.Is(err, service.ErrPaymentAlreadyVerified):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleRejectPayment -> h.svc.RejectPayment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "payment rejected and registration removed"})
}

// loadManagedEvent resolves :eventID and checks the caller may manage it.
func (h *RegistrationHandler) loadManagedEvent(ctx *gin.Context) (domain.User, domain.Event, *response.Err) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		return domain.User{}, domain.Event{}, respErr
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 64)
	if err != nil {
		return domain.User{}, domain.Event{}, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err))
	}

	event, err := h.eSvc.GetByID(ctx.Request.Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return domain.User{}, domain.Event{}, response.ErrNotFound("event", "ID", eventID)
		}

		return domain.User{}, domain.Event{}, response.ErrInternalServerError(fmt.Errorf("loadManagedEvent -> h.eSvc.GetByID -> %w", err))
	}

	if !canManageEvent(user, event) {
		return domain.User{}, domain.Event{}, response.ErrPermissionDenied(fmt.Errorf("user %v cannot manage event %v", user.ID, eventID))
	}

	return user, event, nil
}

// loadManagedRegistration resolves :registrationID and checks the caller
// may manage its event.
func (h *RegistrationHandler) loadManagedRegistration(ctx *gin.Context) (domain.Registration, *response.Err) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		return domain.Registration{}, respErr
	}

	registrationID, err := strconv.ParseUint(ctx.Param("registrationID"), 10, 64)
	if err != nil {
		return domain.Registration{}, response.ErrBadRequest(fmt.Errorf("invalid registration ID: %w", err))
	}

	reg, err := h.svc.GetByID(ctx.Request.Context(), uint(registrationID))
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			return domain.Registration{}, response.ErrNotFound("registration", "ID", registrationID)
		}

		return domain.Registration{}, response.ErrInternalServerError(fmt.Errorf("loadManagedRegistration -> h.svc.GetByID -> %w", err))
	}

	event, err := h.eSvc.GetByID(ctx.Request.Context(), reg.EventID)
	if err != nil {
		return domain.Registration{}, response.ErrInternalServerError(fmt.Errorf("loadManagedRegistration -> h.eSvc.GetByID -> %w", err))
	}

	if !canManageEvent(user, event) {
		return domain.Registration{}, response.ErrPermissionDenied(fmt.Errorf("user %v cannot manage registration %v", user.ID, registrationID))
	}

	return reg, nil
}
