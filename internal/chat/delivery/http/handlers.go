package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	pkgResponse "companion-bot/pkg/response"
)

// RefreshHistory godoc
// @Summary     Invalidate a user's cached history
// @Description Marks the in-memory conversation cache stale; the next turn re-reads the durable store. Use after editing history documents directly.
// @Tags        Chat
// @Produce     json
// @Param       user_id path string true "User ID (telegram_<id>)"
// @Success     200 {object} response.Resp "OK"
// @Failure     400 {object} response.Resp "Bad Request"
// @Security    AdminToken
// @Router      /api/v1/admin/chat/history/{user_id}/refresh [POST]
func (h *handler) RefreshHistory(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		pkgResponse.Error(c, errors.New("user_id is required"), nil)
		return
	}

	h.uc.RefreshHistory(userID)
	pkgResponse.OK(c, map[string]string{"status": "refreshed", "user_id": userID})
}
