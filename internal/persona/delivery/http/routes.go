package http

import (
	"github.com/gin-gonic/gin"

	"companion-bot/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.GET("", mw.Auth(), h.Get)
	rg.PUT("", mw.Auth(), h.Set)
}
