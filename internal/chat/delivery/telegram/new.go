package telegram

import (
	"github.com/gin-gonic/gin"

	"companion-bot/internal/chat"
	"companion-bot/internal/content"
	pkgLog "companion-bot/pkg/log"
	pkgTelegram "companion-bot/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// New creates a new Telegram delivery handler.
func New(
	l pkgLog.Logger,
	uc chat.UseCase,
	contentUC content.UseCase,
	bot *pkgTelegram.Bot,
	rateLimitPerMin int,
) Handler {
	return &handler{
		l:         l,
		uc:        uc,
		contentUC: contentUC,
		bot:       bot,
		limiter:   newRateLimiter(rateLimitPerMin),
	}
}
