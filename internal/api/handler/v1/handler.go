package v1

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/eventsync/eventsync-api/internal/api/handler/v1/response"
	"github.com/eventsync/eventsync-api/internal/api/middleware"
	"github.com/eventsync/eventsync-api/internal/domain"
	"github.com/eventsync/eventsync-api/internal/service"
)

// getUserFromContext loads the full user record behind the JWT that the
// auth middleware verified.
func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	val, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return domain.User{}, response.ErrUnauthorized("missing authentication")
	}

	userID, ok := val.(uint)
	if !ok {
		return domain.User{}, response.ErrUnauthorized("invalid authentication")
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized("unknown user")
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("getUserFromContext -> uSvc.GetUser -> %w", err))
	}

	return user, nil
}
