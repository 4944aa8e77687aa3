package http

import (
	"github.com/gin-gonic/gin"

	"companion-bot/internal/persona"
	pkgLog "companion-bot/pkg/log"
)

// Handler is the public interface for the persona admin HTTP delivery layer.
type Handler interface {
	Get(c *gin.Context)
	Set(c *gin.Context)
}

type handler struct {
	l    pkgLog.Logger
	repo persona.Repository
}

// New creates a new HTTP handler for the persona.
func New(l pkgLog.Logger, repo persona.Repository) *handler {
	return &handler{
		l:    l,
		repo: repo,
	}
}
