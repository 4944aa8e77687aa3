package http

import (
	"github.com/gin-gonic/gin"

	"companion-bot/internal/content"
	pkgLog "companion-bot/pkg/log"
)

// Handler is the public interface for the content admin HTTP delivery layer.
type Handler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Detail(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type handler struct {
	l  pkgLog.Logger
	uc content.UseCase
}

// New creates a new HTTP handler for the content catalog.
func New(l pkgLog.Logger, uc content.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
