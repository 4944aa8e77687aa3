package http

import (
	"github.com/gin-gonic/gin"

	"companion-bot/internal/chat"
	pkgLog "companion-bot/pkg/log"
)

// Handler is the public interface for the chat admin HTTP delivery layer.
type Handler interface {
	RefreshHistory(c *gin.Context)
}

type handler struct {
	l  pkgLog.Logger
	uc chat.UseCase
}

// New creates a new HTTP handler for chat admin operations.
func New(l pkgLog.Logger, uc chat.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
