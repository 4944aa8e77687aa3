package http

import (
	"github.com/gin-gonic/gin"

	"companion-bot/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.POST("/history/:user_id/refresh", mw.Auth(), h.RefreshHistory)
}
