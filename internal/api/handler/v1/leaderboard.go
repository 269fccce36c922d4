package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventsync/eventsync-api/internal/api/handler/v1/response"
	"github.com/eventsync/eventsync-api/internal/domain"
)

type LeaderboardService interface {
	Leaderboard(ctx context.Context) (domain.Leaderboard, error)
}

type LeaderboardHandler struct {
	svc LeaderboardService
}

func NewLeaderboardHandler(svc LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		svc: svc,
	}
}

// HandleGetLeaderboard godoc
// @Summary      Get the campus leaderboard
// @Description  Top students and clubs by activity points.
// @Tags         leaderboard
// @Produce      json
// @Success      200  {object}  domain.Leaderboard
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /leaderboard [get]
// @Security BearerAuth
func (h *LeaderboardHandler) HandleGetLeaderboard(ctx *gin.Context) {
	board, err := h.svc.Leaderboard(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetLeaderboard -> h.svc.Leaderboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, board)
}
