package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"companion-bot/config"
	"companion-bot/internal/chat"
	tgDelivery "companion-bot/internal/chat/delivery/telegram"
	"companion-bot/internal/content"
	"companion-bot/internal/persona"
	pkgLog "companion-bot/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           pkgLog.Logger
	port        int
	mode        string
	environment string

	// Telegram webhook
	telegramHandler tgDelivery.Handler

	// Admin API
	chatUC      chat.UseCase
	contentUC   content.UseCase
	personaRepo persona.Repository
	adminToken  string
	config      *config.Config
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      pkgLog.Logger
	Port        int
	Mode        string
	Environment string

	// Telegram webhook
	TelegramHandler tgDelivery.Handler

	// Admin API
	ChatUC      chat.UseCase
	ContentUC   content.UseCase
	PersonaRepo persona.Repository
	AdminToken  string
	AppConfig   *config.Config
}

// New creates a new HTTPServer instance.
func New(logger pkgLog.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.Default(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		telegramHandler: cfg.TelegramHandler,
		chatUC:          cfg.ChatUC,
		contentUC:       cfg.ContentUC,
		personaRepo:     cfg.PersonaRepo,
		adminToken:      cfg.AdminToken,
		config:          cfg.AppConfig,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}
