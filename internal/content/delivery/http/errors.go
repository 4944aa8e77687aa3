package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"companion-bot/internal/content"
	pkgResponse "companion-bot/pkg/response"
)

// respondError translates domain errors into HTTP responses.
func (h *handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, content.ErrNotFound):
		pkgResponse.NotFound(c, err)
	case errors.Is(err, content.ErrInvalidItem), errors.Is(err, content.ErrInvalidUpdate):
		pkgResponse.Error(c, err, nil)
	default:
		pkgResponse.InternalError(c, err)
	}
}
