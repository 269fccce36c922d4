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

type ClubService interface {
	Create(ctx context.Context, club domain.Club, creator domain.User) (domain.Club, error)
	GetByID(ctx context.Context, id uint) (domain.Club, error)
	ListAll(ctx context.Context) ([]domain.Club, error)
	Update(ctx context.Context, club domain.Club) (domain.Club, error)
	Delete(ctx context.Context, id uint) error
	Join(ctx context.Context, clubID, userID uint) error
	Leave(ctx context.Context, clubID, userID uint) error
}

type ClubHandler struct {
	svc  ClubService
	uSvc UserService
}

func NewClubHandler(svc ClubService, uSvc UserService) *ClubHandler {
	return &ClubHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

func canManageClub(user domain.User, club domain.Club) bool {
	if user.Role == domain.RoleAdmin {
		return true
	}

	return user.Role == domain.RoleClub && user.ClubID != nil && *user.ClubID == club.ID
}

// HandleListClubs godoc
// @Summary      List clubs
// @Tags         clubs
// @Produce      json
// @Success      200  {array}   domain.Club
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /clubs [get]
// @Security BearerAuth
func (h *ClubHandler) HandleListClubs(ctx *gin.Context) {
	clubs, err := h.svc.ListAll(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListClubs -> h.svc.ListAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, clubs)
}

// HandleGetClub godoc
// @Summary      Get a club by ID
// @Tags         clubs
// @Produce      json
// @Param        clubID  path      int  true  "Club ID"
// @Success      200     {object}  domain.Club
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /clubs/{clubID} [get]
// @Security BearerAuth
func (h *ClubHandler) HandleGetClub(ctx *gin.Context) {
	clubID, err := strconv.ParseUint(ctx.Param("clubID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid club ID: %w", err)))
		return
	}

	club, err := h.svc.GetByID(ctx.Request.Context(), uint(clubID))
	if err != nil {
		if errors.Is(err, service.ErrClubNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("club", "ID", clubID))
			return
		}

		err = fmt.Errorf("v1.HandleGetClub -> h.svc.GetByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, club)
}

// HandleCreateClub godoc
// @Summary      Create a club profile
// @Description  The caller becomes the club president and its first member.
// @Tags         clubs
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateClubRequest  true  "Club details"
// @Success      201      {object}  domain.Club
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /clubs [post]
// @Security BearerAuth
func (h *ClubHandler) HandleCreateClub(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleClub && user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot create clubs", user.ID)))
		return
	}

	if user.ClubID != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("user already manages a club")))
		return
	}

	var req request.CreateClubRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	club := domain.Club{
		Name:           req.Name,
		Description:    req.Description,
		VicePresident:  req.VicePresident,
		FacultyAdvisor: req.FacultyAdvisor,
		PhoneNo:        req.PhoneNo,
		Tags:           req.Tags,
	}

	created, err := h.svc.Create(ctx.Request.Context(), club, user)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateClub -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateClub godoc
// @Summary      Update a club profile
// @Tags         clubs
// @Accept       json
// @Produce      json
// @Param        clubID   path      int                        true  "Club ID"
// @Param        request  body      request.UpdateClubRequest  true  "Club details"
// @Success      200      {object}  domain.Club
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /clubs/{clubID} [patch]
// @Security BearerAuth
func (h *ClubHandler) HandleUpdateClub(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	clubID, err := strconv.ParseUint(ctx.Param("clubID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid club ID: %w", err)))
		return
	}

	club, err := h.svc.GetByID(ctx.Request.Context(), uint(clubID))
	if err != nil {
		if errors.Is(err, service.ErrClubNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("club", "ID", clubID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateClub -> h.svc.GetByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if !canManageClub(user, club) {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot edit club %v", user.ID, clubID)))
		return
	}

	var req request.UpdateClubRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	club.Name = req.Name
	club.Description = req.Description
	club.VicePresident = req.VicePresident
	club.FacultyAdvisor = req.FacultyAdvisor
	club.PhoneNo = req.PhoneNo
	club.Tags = req.Tags

	updated, err := h.svc.Update(ctx.Request.Context(), club)
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateClub -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteClub godoc
// @Summary      Delete a club
// @Description  Admin only.
// @Tags         clubs
// @Produce      json
// @Param        clubID  path  int  true  "Club ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /clubs/{clubID} [delete]
// @Security BearerAuth
func (h *ClubHandler) HandleDeleteClub(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	clubID, err := strconv.ParseUint(ctx.Param("clubID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid club ID: %w", err)))
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), uint(clubID)); err != nil {
		if errors.Is(err, service.ErrClubNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("club", "ID", clubID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteClub -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleJoinClub godoc
// @Summary      Join a club
// @Tags         clubs
// @Produce      json
// @Param        clubID  path  int  true  "Club ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /clubs/{clubID}/join [post]
// @Security BearerAuth
func (h *ClubHandler) HandleJoinClub(ctx *gin.Context) {
	h.handleMembership(ctx, true)
}

// HandleLeaveClub godoc
// @Summary      Leave a club
// @Tags         clubs
// @Produce      json
// @Param        clubID  path  int  true  "Club ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /clubs/{clubID}/leave [post]
// @Security BearerAuth
func (h *ClubHandler) HandleLeaveClub(ctx *gin.Context) {
	h.handleMembership(ctx, false)
}

func (h *ClubHandler) handleMembership(ctx *gin.Context, join bool) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	clubID, err := strconv.ParseUint(ctx.Param("clubID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid club ID: %w", err)))
		return
	}

	if join {
		err = h.svc.Join(ctx.Request.Context(), uint(clubID), user.ID)
	} else {
		err = h.svc.Leave(ctx.Request.Context(), uint(clubID), user.ID)
	}
	if err != nil {
		if errors.Is(err, service.ErrClubNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("club", "ID", clubID))
			return
		}

		err = fmt.Errorf("v1.handleMembership -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "membership updated"})
}
